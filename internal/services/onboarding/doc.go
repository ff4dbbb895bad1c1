/*
Package onboarding moves a merchant profile through the review
pipeline:

	draft -> submitted -> validating -> pending_bank_approval -> approved

A rejection is allowed from any non-terminal state, requires a reason
and is terminal. A manual override approval is a distinct, audited
operation and never goes through the normal approve guard.

Every transition is guarded by the profile's current status, runs
under a per-merchant lock, and commits through a versioned update so
concurrent admin actions cannot silently overwrite each other. Each
committed transition appends an audit row and notifies the merchant.
*/
package onboarding
