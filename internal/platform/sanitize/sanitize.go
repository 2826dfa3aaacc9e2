// Package sanitize limpia texto libre ingresado por el usuario antes de persistirlo.
package sanitize

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

func strict() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.StrictPolicy()
	})
	return policy
}

// maxPasses acota la decodificación de entidades anidadas (&amp;lt; etc).
const maxPasses = 4

// Text quita cualquier markup y espacios en los extremos.
// bluemonday escapa entidades; las devolvemos a texto plano porque la UI no
// renderiza HTML. Desescapar puede revelar markup nuevo, así que se repite
// hasta que el resultado no cambie.
func Text(s string) string {
	cur := strings.TrimSpace(s)
	if cur == "" {
		return ""
	}
	for i := 0; i < maxPasses; i++ {
		next := strings.TrimSpace(html.UnescapeString(strict().Sanitize(cur)))
		if next == cur {
			return cur
		}
		cur = next
	}
	// No convergió: se devuelve escapado, nunca markup.
	return strings.TrimSpace(strict().Sanitize(cur))
}

// TextPtr aplica Text sobre un puntero opcional (nil = no tocar).
func TextPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := Text(*s)
	return &v
}
