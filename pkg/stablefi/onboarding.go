package stablefi

import (
	"database/sql"
	"errors"
	"strings"
)

// SaveInstitutionProfile stores the onboarding questionnaire answers.
// Saving again overwrites the single profile row.
func (c *Core) SaveInstitutionProfile(profile InstitutionProfile) error {
	profile.CompanyName = strings.TrimSpace(profile.CompanyName)
	if profile.CompanyName == "" {
		return NewError(ErrCodeValidation, "company name is required")
	}
	if profile.ExpectedInvestment == "" || profile.ExpectedYield == "" || profile.InvestmentPeriod == "" {
		return NewError(ErrCodeValidation, "expected investment, yield and period are required")
	}

	hasWallet := 0
	if profile.HasOwnWallet {
		hasWallet = 1
	}
	_, err := c.db.Exec(`
		INSERT INTO institution_profile (id, company_name, expected_investment, expected_yield, investment_period, has_own_wallet, wallet_platform, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			company_name = excluded.company_name,
			expected_investment = excluded.expected_investment,
			expected_yield = excluded.expected_yield,
			investment_period = excluded.investment_period,
			has_own_wallet = excluded.has_own_wallet,
			wallet_platform = excluded.wallet_platform,
			updated_at = CURRENT_TIMESTAMP
	`, profile.CompanyName, profile.ExpectedInvestment, profile.ExpectedYield, profile.InvestmentPeriod, hasWallet, profile.WalletPlatform)
	if err != nil {
		return WrapError(ErrCodeDatabase, "save institution profile", err)
	}
	c.logger.Info("institution profile saved", "company", profile.CompanyName)
	return nil
}

// GetInstitutionProfile returns the stored profile, or nil before
// onboarding has completed.
func (c *Core) GetInstitutionProfile() (*InstitutionProfile, error) {
	var profile InstitutionProfile
	var hasWallet int
	var platform, updatedAt sql.NullString
	err := c.db.QueryRow(`
		SELECT company_name, expected_investment, expected_yield, investment_period, has_own_wallet, wallet_platform, updated_at
		FROM institution_profile
		WHERE id = 1
	`).Scan(
		&profile.CompanyName,
		&profile.ExpectedInvestment,
		&profile.ExpectedYield,
		&profile.InvestmentPeriod,
		&hasWallet,
		&platform,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "load institution profile", err)
	}
	profile.HasOwnWallet = hasWallet != 0
	if platform.Valid {
		profile.WalletPlatform = &platform.String
	}
	if updatedAt.Valid {
		profile.UpdatedAt = &updatedAt.String
	}
	return &profile, nil
}

// GetLanguage returns the stored UI language, defaulting to zh.
func (c *Core) GetLanguage() (string, error) {
	var lang string
	err := c.db.QueryRow("SELECT value FROM preferences WHERE key = 'language'").Scan(&lang)
	if errors.Is(err, sql.ErrNoRows) {
		return "zh", nil
	}
	if err != nil {
		return "", WrapError(ErrCodeDatabase, "load language", err)
	}
	return lang, nil
}

// SetLanguage stores the UI language preference.
func (c *Core) SetLanguage(lang string) error {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if !isValidLanguage(lang) {
		return NewError(ErrCodeInvalidInput, "invalid language: "+lang)
	}
	_, err := c.db.Exec(`
		INSERT INTO preferences (key, value) VALUES ('language', ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, lang)
	if err != nil {
		return WrapError(ErrCodeDatabase, "save language", err)
	}
	return nil
}

func isValidLanguage(lang string) bool {
	for _, l := range Languages {
		if l == lang {
			return true
		}
	}
	return false
}
