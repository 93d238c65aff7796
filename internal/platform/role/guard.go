package role

import (
	"go.accessdeck.tech/internal/platform/common"
	"go.accessdeck.tech/internal/platform/company"
	"go.accessdeck.tech/internal/platform/permission"
)

// CompanyResource is the permission resource governing companies.
// Only reseller companies may hold actions on it.
const CompanyResource = "company"

// ValidateCompanyPermissions rejects permission maps that grant actions
// on the company resource to a non-reseller company. A missing company
// key, or one with an empty action list, always passes.
func ValidateCompanyPermissions(c *company.Company, perms permission.Map) *common.UseCaseError {
	if len(perms[CompanyResource]) == 0 {
		return nil
	}
	if !c.Reseller {
		return common.BusinessRuleError(common.ErrCodeCompanyNotReseller,
			"only a reseller company may hold company permissions",
			map[string]any{"company": c.ID})
	}
	return nil
}
