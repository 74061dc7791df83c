package param

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi"
	"github.com/gorilla/schema"
)

var decoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	d.SetAliasTag("json")
	return d
}()

// Binding binds query string and chi route params onto dest.
func Binding(r *http.Request, dest interface{}) error {
	values := url.Values{}
	for key, vs := range r.URL.Query() {
		for _, v := range vs {
			values.Add(key, v)
		}
	}

	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		for idx, key := range rctx.URLParams.Keys {
			values.Set(key, rctx.URLParams.Values[idx])
		}
	}

	return decoder.Decode(dest, values)
}
