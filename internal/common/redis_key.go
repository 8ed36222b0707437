package common

import "fmt"

const RedisKeyLeaderboard = "leaderboard:badges"

func RedisKeyAleoPrice(vsCurrency string) string {
	return fmt.Sprintf("price:aleo:%s", vsCurrency)
}
