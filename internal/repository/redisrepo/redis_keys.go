package redisrepo

import "fmt"

const (
	USER_KEY                      = "user:%s"                      // <userID>
	PROFILE_KEY                   = "profile:%s"                   // <profileID>
	PROFILE_SEARCH_RESULTS_KEY    = "profile-search-results:%d:%s" // <generation>:<username part>
	PROFILE_SEARCH_GENERATION_KEY = "profile-search-generation"
	REVOKED_REFRESH_TOKEN_KEY     = "revoked-refresh-token:%s" // <token>
)

func UserKey(userID string) string {
	return fmt.Sprintf(USER_KEY, userID)
}

func ProfileKey(profileID string) string {
	return fmt.Sprintf(PROFILE_KEY, profileID)
}

func ProfileSearchResultsKey(generation int64, usernamePart string) string {
	return fmt.Sprintf(PROFILE_SEARCH_RESULTS_KEY, generation, usernamePart)
}

func RevokedRefreshTokenKey(token string) string {
	return fmt.Sprintf(REVOKED_REFRESH_TOKEN_KEY, token)
}
