// Package rules provides the validation rules and the pipeline that runs them.
//
// Each rule reports one kind of violation and is registered under its
// rule id, so rules can be disabled individually through rules.disabled.
package rules
