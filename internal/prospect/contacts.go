package prospect

import (
	"context"
	"fmt"
	"strings"

	"leadscout-engine/internal/domain"
)

// Contacts finds likely people at a company by running role-scoped
// searches against linkedin profile pages. Roles default to the
// configured list; results keep the provider's ranking order per role.
func (e *Engine) Contacts(ctx context.Context, company string, roles []string) ([]domain.PersonLead, error) {
	company = strings.TrimSpace(company)
	if company == "" {
		return nil, &ValidationError{Problems: []string{"company is required"}}
	}

	cfg := e.Cfg()
	if len(roles) == 0 {
		roles = cfg.Contacts.Roles
	}
	if len(roles) == 0 {
		roles = []string{"Founder", "CEO", "Head of Sales"}
	}

	seen := map[string]bool{}
	var out []domain.PersonLead
	var firstErr error
	for _, role := range roles {
		query := fmt.Sprintf(`site:linkedin.com/in "%s" "%s"`, company, role)
		results, err := e.Search.Search(ctx, query, 5)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		for _, r := range results {
			if !strings.Contains(strings.ToLower(r.URL), "linkedin.com/in") {
				continue
			}
			name, parsedRole := parsePersonTitle(r.Title)
			if name == "" {
				continue
			}
			if parsedRole == "" {
				parsedRole = role
			}
			key := strings.ToLower(name + "|" + r.URL)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, domain.PersonLead{
				Name:        name,
				Role:        parsedRole,
				LinkedInURL: r.URL,
			})
		}
	}
	if len(out) == 0 && firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

// parsePersonTitle splits a profile page title like
// "Jane Doe – Head of Sales – Acme | LinkedIn" into name and role.
func parsePersonTitle(title string) (name, role string) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ""
	}
	// drop the site suffix first
	if i := strings.Index(title, "|"); i >= 0 {
		title = strings.TrimSpace(title[:i])
	}

	for _, sep := range []string{" – ", " - ", " — "} {
		if parts := strings.Split(title, sep); len(parts) >= 2 {
			return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		}
	}
	return title, ""
}
