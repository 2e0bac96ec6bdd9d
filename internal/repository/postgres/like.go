package postgres

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutralizes LIKE pattern metacharacters so a filter term
// matches as a literal substring. Queries using the result must declare
// ESCAPE '\'.
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}
