// Command autostubd runs a standalone mock server for the bundled PetStore
// fixture: a demonstration of wiring a Registry and debugserver together,
// useful for exercising the dispatcher with a real HTTP client instead of
// an in-process RoundTripper.
package main

import (
	_ "embed"
	"encoding/json"
	"flag"
	"log"
	"net/http"

	"github.com/autostub-go/autostub"
	"github.com/autostub-go/autostub/debugserver"
	"github.com/autostub-go/autostub/specmodel"
)

//go:embed fixtures/petstore.yaml
var petstoreFixture []byte

func main() {
	addr := flag.String("addr", ":8080", "address to listen on")
	level := flag.String("cache", "advanced", "cache level: none, basic, advanced")
	seed := flag.Uint64("seed", 0, "random seed (0 = entropy-seeded)")
	flag.Parse()

	spec, named, err := specmodel.LoadYAMLFixture(petstoreFixture)
	if err != nil {
		log.Fatalf("autostubd: loading fixture: %v", err)
	}

	registry := autostub.NewRegistry()
	handle, err := registry.Register(&autostub.RegisterOptions{
		Spec:         spec,
		Level:        parseCacheLevel(*level),
		Seed:         *seed,
		NamedSchemas: named,
	})
	if err != nil {
		log.Fatalf("autostubd: registering fixture: %v", err)
	}
	defer handle.Close()

	mux := http.NewServeMux()
	mux.Handle("/", dispatchHandler(registry, spec))
	mux.Handle("/openapi.json", debugserver.New(spec, "PetStore (autostub)", nil).Handler())
	mux.Handle("/docs", debugserver.New(spec, "PetStore (autostub)", nil).Handler())

	log.Printf("autostubd: serving PetStore mock on %s (cache=%s)", *addr, *level)
	log.Fatal(http.ListenAndServe(*addr, mux))
}

// dispatchHandler serves every other path by dispatching it through
// registry, mirroring what adapters.RoundTripper does for an in-process
// http.Client but over the wire. The incoming request's path is prefixed
// with the fixture's own server entry before dispatch, since OAPISpec
// matches against a full URL and strips that prefix itself.
func dispatchHandler(registry *autostub.Registry, spec *autostub.Spec) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, parameters, headers := map[string]string{}, map[string]string{}, map[string]string{}
		for key, values := range r.URL.Query() {
			if len(values) > 0 {
				parameters[key] = values[0]
			}
		}
		for key, values := range r.Header {
			if len(values) > 0 {
				headers[key] = values[0]
			}
		}

		url := r.URL.Path
		if len(spec.Servers) > 0 {
			url = spec.Servers[0] + r.URL.Path
		}

		req := autostub.NewRequest(url, r.Method, data, parameters, headers)
		resp, err := registry.Dispatch(req)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)

			return
		}

		for k, v := range resp.Headers {
			w.Header().Set(k, v)
		}
		w.Header().Set("Content-Type", resp.ContentType)
		w.WriteHeader(resp.StatusCode)
		_ = json.NewEncoder(w).Encode(resp.Content)
	})
}

func parseCacheLevel(s string) autostub.CachingLevel {
	switch s {
	case "none":
		return autostub.CacheNone
	case "basic":
		return autostub.CacheBasic
	default:
		return autostub.CacheAdvanced
	}
}
