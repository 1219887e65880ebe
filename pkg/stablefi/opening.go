package stablefi

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
)

// contactGroupURL is opened in a new tab when an applicant reaches the
// submission step. Fire-and-forget; no response is consumed.
const contactGroupURL = "https://www.feishu.cn/invitation/page/add_contact"

// minCheckedDocuments is how many checklist items must be confirmed before
// the materials step can be passed.
const minCheckedDocuments = 4

// openingSteps are the four stages of the account-opening wizard.
var openingSteps = []OpeningStep{
	{ID: 1, Key: "company", Title: BilingualText{Zh: "确认公司限制", En: "Confirm company restrictions"}},
	{ID: 2, Key: "eligibility", Title: BilingualText{Zh: "投资者资格", En: "Investor eligibility"}},
	{ID: 3, Key: "documents", Title: BilingualText{Zh: "所需材料", En: "Required documents"}},
	{ID: 4, Key: "apply", Title: BilingualText{Zh: "提交申请", En: "Submit application"}},
}

// requiredDocuments is the static account-opening checklist.
var requiredDocuments = []ChecklistDocument{
	{ID: "license", Name: BilingualText{Zh: "营业执照/公司注册证书", En: "Business license / certificate of incorporation"}, Desc: BilingualText{Zh: "需要经认证的副本", En: "Certified copy required"}},
	{ID: "legal_rep", Name: BilingualText{Zh: "法人代表身份证明", En: "Legal representative ID"}, Desc: BilingualText{Zh: "护照或身份证复印件", En: "Passport or ID card copy"}},
	{ID: "articles", Name: BilingualText{Zh: "公司章程", En: "Articles of association"}, Desc: BilingualText{Zh: "最新版本", En: "Latest version"}},
	{ID: "financial", Name: BilingualText{Zh: "财务报表", En: "Financial statements"}, Desc: BilingualText{Zh: "近两年经审计报表", En: "Audited, last two years"}},
	{ID: "investor_cert", Name: BilingualText{Zh: "合格投资者证明", En: "Qualified investor certificate"}, Desc: BilingualText{Zh: "银行或机构出具", En: "Issued by a bank or institution"}},
	{ID: "aml", Name: BilingualText{Zh: "AML/KYC文件", En: "AML/KYC documents"}, Desc: BilingualText{Zh: "反洗钱合规文件", En: "Anti-money-laundering compliance files"}},
	{ID: "board", Name: BilingualText{Zh: "董事会决议", En: "Board resolution"}, Desc: BilingualText{Zh: "授权投资决议", En: "Investment authorization resolution"}},
	{ID: "ubo", Name: BilingualText{Zh: "实际受益人声明", En: "Ultimate beneficial owner declaration"}, Desc: BilingualText{Zh: "UBO声明文件", En: "UBO declaration file"}},
}

// OpeningChecklist returns the wizard steps and required document list.
func OpeningChecklist() ([]OpeningStep, []ChecklistDocument) {
	return openingSteps, requiredDocuments
}

// CreateApplication starts an account-opening application for a product.
func (c *Core) CreateApplication(productID, companyName string) (*Application, error) {
	if _, err := c.GetProduct(productID); err != nil {
		return nil, err
	}
	app := Application{
		ID:          uuid.NewString(),
		ProductID:   strings.ToLower(strings.TrimSpace(productID)),
		CompanyName: strings.TrimSpace(companyName),
		CurrentStep: 1,
		Status:      "in_progress",
		ContactURL:  contactGroupURL,
	}
	_, err := c.db.Exec(`
		INSERT INTO applications (id, product_id, company_name, current_step, status, checked_docs)
		VALUES (?, ?, ?, ?, ?, '')
	`, app.ID, app.ProductID, app.CompanyName, app.CurrentStep, app.Status)
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "insert application", err)
	}
	return &app, nil
}

// UpdateApplication moves an application to a step and records the checked
// document IDs. Reaching the final step requires at least
// minCheckedDocuments confirmed items and marks the application submitted.
func (c *Core) UpdateApplication(id string, step int, checkedDocs []string) (*Application, error) {
	app, err := c.GetApplication(id)
	if err != nil {
		return nil, err
	}
	if step < 1 || step > len(openingSteps) {
		return nil, NewError(ErrCodeInvalidInput, "invalid step")
	}
	checked := validChecklistIDs(checkedDocs)
	if step == len(openingSteps) && len(checked) < minCheckedDocuments {
		return nil, NewError(ErrCodeValidation, "at least 4 documents must be confirmed before submission")
	}

	status := "in_progress"
	if step == len(openingSteps) {
		status = "submitted"
	}
	_, err = c.db.Exec(`
		UPDATE applications
		SET current_step = ?, status = ?, checked_docs = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, step, status, strings.Join(checked, ","), id)
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "update application", err)
	}

	app.CurrentStep = step
	app.Status = status
	app.CheckedDocs = checked
	if status == "submitted" {
		c.logActivity(ActivityLog{Action: "application_submitted", ProductID: &app.ProductID})
	}
	return app, nil
}

// GetApplication returns one application by ID.
func (c *Core) GetApplication(id string) (*Application, error) {
	var app Application
	var checked string
	var createdAt, updatedAt sql.NullString
	err := c.db.QueryRow(`
		SELECT id, product_id, company_name, current_step, status, checked_docs, created_at, updated_at
		FROM applications
		WHERE id = ?
	`, strings.TrimSpace(id)).Scan(&app.ID, &app.ProductID, &app.CompanyName, &app.CurrentStep, &app.Status, &checked, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NewError(ErrCodeNotFound, "application not found: "+id)
	}
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "load application", err)
	}
	if checked != "" {
		app.CheckedDocs = strings.Split(checked, ",")
	}
	if createdAt.Valid {
		app.CreatedAt = &createdAt.String
	}
	if updatedAt.Valid {
		app.UpdatedAt = &updatedAt.String
	}
	app.ContactURL = contactGroupURL
	return &app, nil
}

// GetApplications returns all applications, newest first.
func (c *Core) GetApplications() ([]Application, error) {
	rows, err := c.db.Query(`
		SELECT id, product_id, company_name, current_step, status, checked_docs, created_at, updated_at
		FROM applications
		ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "query applications", err)
	}
	defer rows.Close()

	var apps []Application
	for rows.Next() {
		var app Application
		var checked string
		var createdAt, updatedAt sql.NullString
		if err := rows.Scan(&app.ID, &app.ProductID, &app.CompanyName, &app.CurrentStep, &app.Status, &checked, &createdAt, &updatedAt); err != nil {
			return nil, WrapError(ErrCodeDatabase, "scan application", err)
		}
		if checked != "" {
			app.CheckedDocs = strings.Split(checked, ",")
		}
		if createdAt.Valid {
			app.CreatedAt = &createdAt.String
		}
		if updatedAt.Valid {
			app.UpdatedAt = &updatedAt.String
		}
		app.ContactURL = contactGroupURL
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

// validChecklistIDs filters unknown document IDs, preserving input order and
// dropping duplicates.
func validChecklistIDs(ids []string) []string {
	known := make(map[string]bool, len(requiredDocuments))
	for _, doc := range requiredDocuments {
		known[doc.ID] = true
	}
	var out []string
	seen := map[string]bool{}
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if known[id] && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
