package highlight

import (
	"regexp"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	fragmentPolicyOnce sync.Once
	fragmentPolicy     *bluemonday.Policy
)

// sanitizeFragment strips anything but classed spans from the highlighted
// markup. The tokenizer only ever emits spans, so this is a belt for hosts
// that inject the fragment into pages they do not fully control.
func sanitizeFragment(markup string) string {
	return fragmentSanitizer().Sanitize(markup)
}

func fragmentSanitizer() *bluemonday.Policy {
	fragmentPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("span")
		policy.AllowAttrs("class").
			Matching(regexp.MustCompile(`^[-\w ]+$`)).
			OnElements("span")
		fragmentPolicy = policy
	})
	return fragmentPolicy
}
