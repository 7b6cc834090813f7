// Package providers holds the service providers registered with the
// numerics service registry.
//
// Each provider implements service.Provider: Definition returns its tools
// and their parameters, Execute runs one tool and reports failures as a
// Result carrying an error_type rather than a Go error.
//
// Available Providers:
//   - math: arithmetic, kind conversion, formatting, statistics, special
//     functions and expression evaluation over decimal, double and complex
//     values
//
// Example Usage:
//
//	registry := service.NewRegistry()
//	registry.Register(math.NewProvider(dispatcher, numeric.KindDecimal))
package providers
