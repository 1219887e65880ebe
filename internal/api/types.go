package api

// connectWalletPayload defines the connect-wallet request body.
type connectWalletPayload struct {
	Name     string   `json:"name"`
	Address  string   `json:"address"`
	Kind     string   `json:"kind"`
	Chains   []string `json:"chains,omitempty"`
	Platform *string  `json:"platform,omitempty"`
}

// manualWalletPayload defines the manual wallet entry request body.
type manualWalletPayload struct {
	Name          string  `json:"name"`
	Address       string  `json:"address"`
	Token         string  `json:"token"`
	Category      string  `json:"category"`
	Quantity      float64 `json:"quantity"`
	PurchasePrice float64 `json:"purchase_price"`
	PurchaseTime  string  `json:"purchase_time"`
}

// onboardingPayload defines the onboarding questionnaire request body.
type onboardingPayload struct {
	CompanyName        string  `json:"company_name"`
	ExpectedInvestment string  `json:"expected_investment"`
	ExpectedYield      string  `json:"expected_yield"`
	InvestmentPeriod   string  `json:"investment_period"`
	HasOwnWallet       bool    `json:"has_own_wallet"`
	WalletPlatform     *string `json:"wallet_platform,omitempty"`
}

// languagePayload defines the language preference request body.
type languagePayload struct {
	Language string `json:"language"`
}

// assistantMessagePayload defines a chat message request body.
type assistantMessagePayload struct {
	Message  string `json:"message"`
	Language string `json:"language,omitempty"`
}

// assistantSettingsPayload defines the assistant settings request body.
type assistantSettingsPayload struct {
	Provider string `json:"provider"`
	BaseURL  string `json:"base_url,omitempty"`
	Model    string `json:"model,omitempty"`
	APIKey   string `json:"api_key,omitempty"`
}

// applicationPayload defines the create-application request body.
type applicationPayload struct {
	ProductID   string `json:"product_id"`
	CompanyName string `json:"company_name"`
}

// applicationUpdatePayload defines the update-application request body.
type applicationUpdatePayload struct {
	Step        int      `json:"step"`
	CheckedDocs []string `json:"checked_docs"`
}
