// Package service provides the tool registry behind the numerics API.
//
// Providers register a service definition; tool IDs of the form
// "<service>.<tool>" are routed to the provider owning the prefix.
// Discover ranks services against a free-text intent by keyword,
// capability and category matches.
//
// Example Usage:
//
//	registry := service.NewRegistry()
//	registry.Register(math.NewProvider(dispatcher, numeric.KindDecimal))
//	services := registry.Discover("square root", 5)
//	result, err := registry.Execute(ctx, "math.sqrt", params, appCtx)
package service
