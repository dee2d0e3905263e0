package azure

import (
	"fmt"
	"net/url"
	"strings"
)

// APIVersion is the Azure OpenAI REST API version used for chat completions.
const APIVersion = "2024-02-01"

// buildTargetURL constructs the deployment chat completions URL.
// A single trailing slash on base is dropped so the path never doubles up.
func buildTargetURL(base, deployment string) string {
	base = strings.TrimSuffix(base, "/")
	return fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		base, url.PathEscape(deployment), APIVersion)
}
