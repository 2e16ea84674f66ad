// Package store persists submitted VAT returns. Implementations must treat
// (VRN, period key) as the unique submission key and surface
// returns.ErrNotFound / returns.ErrDuplicate.
package store
