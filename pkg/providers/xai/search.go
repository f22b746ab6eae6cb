package xai

import "github.com/quillhq/llmkit/pkg/provider/types"

// SearchTransformer maps the webSearchConfig extension onto xAI's native
// search_parameters wire object (spec.md §4.H): mode, from_date, to_date,
// max_search_results, excluded_websites, max_uses.
func SearchTransformer(body map[string]any, cfg types.Config) map[string]any {
	cfgMap, ok, _ := types.GetExtension[map[string]any](cfg, "webSearchConfig")
	if !ok {
		return body
	}

	params := map[string]any{}
	for _, key := range []string{"mode", "from_date", "to_date", "max_search_results", "max_uses"} {
		if v, present := cfgMap[key]; present {
			params[key] = v
		}
	}
	if excluded, present := cfgMap["excluded_websites"]; present {
		params["sources"] = []map[string]any{{"type": "web", "excluded_websites": excluded}}
	}
	if len(params) > 0 {
		body["search_parameters"] = params
	}
	return body
}
