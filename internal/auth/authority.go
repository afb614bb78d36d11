package auth

// AuthorityPrefix is prepended to every role claim to form an authority.
const AuthorityPrefix = "ROLE_"

// Authorities maps role names to authority strings. Pure data transform.
func Authorities(roles []string) []string {
	out := make([]string, 0, len(roles))
	for _, role := range roles {
		out = append(out, AuthorityPrefix+role)
	}
	return out
}
