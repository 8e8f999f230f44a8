// Package services implements the driving port interfaces.
// Services contain the core validation logic and orchestrate
// calls to driven ports (parser, rules, loaders, stores).
//
// Services are pure Go with no CGO dependencies; native syntax
// checking is injected through driven.SyntaxChecker.
package services
