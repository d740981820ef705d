// Package apierr defines the error taxonomy reported to the caller of a
// translation: the error kinds, the fixed HTTP reason table and the
// constructors that map configuration, stream and HTTP failures to an Error.
package apierr
