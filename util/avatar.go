package util

import (
	"fmt"
	"net/url"

	"github.com/navbryce/yatube/config"
)

func Avatar(seed string) string {
	return fmt.Sprintf("https://api.dicebear.com/7.x/bottts/svg?seed=%v&size=%v", url.QueryEscape(seed), config.AVATAR_SIZE)
}
