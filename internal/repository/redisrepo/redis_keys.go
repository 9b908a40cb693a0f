package redisrepo

import "fmt"

const (
	USER_KEY            = "user:%s"            // <username>
	FOLLOWERS_COUNT_KEY = "followers-count:%s" // <userID>
	FOLLOWING_COUNT_KEY = "following-count:%s" // <userID>
)

func UserKey(username string) string {
	return fmt.Sprintf(USER_KEY, username)
}

func FollowersCountKey(userID string) string {
	return fmt.Sprintf(FOLLOWERS_COUNT_KEY, userID)
}

func FollowingCountKey(userID string) string {
	return fmt.Sprintf(FOLLOWING_COUNT_KEY, userID)
}
