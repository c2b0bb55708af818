// File: internal/service/sanitize.go
package service

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// CleanText 移除所有 HTML 標籤與前後空白，用於 name、sport 等自由文字欄位。
// bluemonday 的輸出是 HTML 轉義後的文字，這裡還原成原字元，JSON 回應才不會出現 &amp;
func CleanText(s string) string {
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}
