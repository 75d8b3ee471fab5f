// shared/redis/constants.go
package redis

const (
	// DocumentKeyPrefix holds a whole state document: auction:document:{name}:
	DocumentKeyPrefix = "auction:document:{%s}:"
)
