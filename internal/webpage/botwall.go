package webpage

import "regexp"

// botWallPattern matches phrases commonly served by anti-automation
// interstitials. Matching any of them means the body is chrome, not content.
var botWallPattern = regexp.MustCompile(
	`(?i)automated process|verify you are a human|captcha|access denied|blocked`,
)

// LooksLikeBotWall reports whether the response body appears to be an
// anti-bot interstitial rather than real page content.
func LooksLikeBotWall(body []byte) bool {
	return botWallPattern.Match(body)
}
