package engine

import "github.com/rshade/accountdesk/internal/account"

func sampleAccounts() []account.Account {
	return []account.Account{
		{ID: "001", Name: "Acme Corp", Phone: "555-0100", OwnerID: "005A", Level: account.Level1,
			LastModifiedBy: &account.User{Name: "Zoe"}},
		{ID: "002", Name: "beta llc", Phone: "555-0200", OwnerID: "005B", Level: account.Level2,
			LastModifiedBy: &account.User{Name: "ana"}},
		{ID: "003", Name: "ACME Holdings", Phone: "", OwnerID: "005A", Level: account.Level2},
		{ID: "004", Name: "", Phone: "555-0400", OwnerID: "", Level: account.Level1},
		{ID: "005", Name: "Gamma", Phone: "555-0500", OwnerID: "005B", Level: "Level 3",
			LastModifiedBy: &account.User{Name: "Bo"}},
		{ID: "006", Name: "delta", Phone: "(555) 0600", OwnerID: "005A", Level: account.Level1},
	}
}

func ids(recs []account.Account) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.ID
	}
	return out
}
