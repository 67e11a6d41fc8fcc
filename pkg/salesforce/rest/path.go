package sfrest

import "strings"

// ObjectNameFromPath extracts the Salesforce object name a request path is
// addressed to. It is pure string matching with no side effects.
//
// The recognized shapes, in priority order:
//
//	sobjects/Account/describe                  -> "Account"
//	query?q=SELECT+Name+FROM+Account           -> "Account"
//	query?q=SELECT+Name+FROM+Account+WHERE+... -> "Account"
//	sobjects                                   -> ""
//	sobjects/Account, sobjects/Account/<id>    -> "Account"
//
// An empty result means the path targets no specific object and object
// validation is skipped. SOQL strings that don't contain a FROM+ token fall
// back to "" rather than failing, as do paths without an sobjects segment
// (e.g. "limits").
func ObjectNameFromPath(path string) string {
	switch {
	case strings.Contains(path, "describe"):
		// sobjects/Account/describe
		parts := strings.Split(path, "/")
		if len(parts) < 2 {
			return ""
		}
		return parts[1]

	case strings.Contains(path, "query?q=SELECT"):
		// query?q=SELECT+one+or+more+fields+FROM+an+object+WHERE+filter+statements
		_, afterFrom, found := strings.Cut(path, "FROM+")
		if !found {
			return ""
		}
		if object, _, hasWhere := strings.Cut(afterFrom, "+WHERE"); hasWhere {
			return object
		}
		return afterFrom

	case path == "sobjects":
		return ""

	default:
		// sobjects/Account or sobjects/Account/<id>
		parts := strings.Split(path, "/")
		for i, part := range parts {
			if part == "sobjects" && i+1 < len(parts) {
				return parts[i+1]
			}
		}
		return ""
	}
}
