package grpcweb

import (
	"context"
	"net/http"
	"time"
)

// Cache mirrors fetch's cache directive.
type Cache int

const (
	CacheDefault Cache = iota
	CacheNoStore
	CacheReload
	CacheNoCache
	CacheForceCache
	CacheOnlyIfCached
)

func (c Cache) String() string {
	switch c {
	case CacheNoStore:
		return "no-store"
	case CacheReload:
		return "reload"
	case CacheNoCache:
		return "no-cache"
	case CacheForceCache:
		return "force-cache"
	case CacheOnlyIfCached:
		return "only-if-cached"
	default:
		return "default"
	}
}

// Credentials mirrors fetch's credentials mode. CredentialsSameOrigin
// is the default, matching a browser's own default fetch behavior.
type Credentials int

const (
	CredentialsSameOrigin Credentials = iota
	CredentialsOmit
	CredentialsInclude
)

func (c Credentials) String() string {
	switch c {
	case CredentialsOmit:
		return "omit"
	case CredentialsInclude:
		return "include"
	default:
		return "same-origin"
	}
}

// Mode mirrors fetch's request mode.
type Mode int

const (
	ModeCORS Mode = iota
	ModeSameOrigin
	ModeNoCORS
	ModeNavigate
)

func (m Mode) String() string {
	switch m {
	case ModeSameOrigin:
		return "same-origin"
	case ModeNoCORS:
		return "no-cors"
	case ModeNavigate:
		return "navigate"
	default:
		return "cors"
	}
}

// Redirect mirrors fetch's redirect mode. RedirectFollow is the
// default.
type Redirect int

const (
	RedirectFollow Redirect = iota
	RedirectError
	RedirectManual
)

func (r Redirect) String() string {
	switch r {
	case RedirectError:
		return "error"
	case RedirectManual:
		return "manual"
	default:
		return "follow"
	}
}

// ReferrerPolicy mirrors eight of fetch's standard referrer policies;
// the empty-string policy has no constant here.
// ReferrerPolicyStrictOriginWhenCrossOrigin is the default.
type ReferrerPolicy int

const (
	ReferrerPolicyStrictOriginWhenCrossOrigin ReferrerPolicy = iota
	ReferrerPolicyNoReferrer
	ReferrerPolicyNoReferrerWhenDowngrade
	ReferrerPolicyOrigin
	ReferrerPolicyOriginWhenCrossOrigin
	ReferrerPolicySameOrigin
	ReferrerPolicyStrictOrigin
	ReferrerPolicyUnsafeURL
)

func (p ReferrerPolicy) String() string {
	switch p {
	case ReferrerPolicyNoReferrer:
		return "no-referrer"
	case ReferrerPolicyNoReferrerWhenDowngrade:
		return "no-referrer-when-downgrade"
	case ReferrerPolicyOrigin:
		return "origin"
	case ReferrerPolicyOriginWhenCrossOrigin:
		return "origin-when-cross-origin"
	case ReferrerPolicySameOrigin:
		return "same-origin"
	case ReferrerPolicyStrictOrigin:
		return "strict-origin"
	case ReferrerPolicyUnsafeURL:
		return "unsafe-url"
	default:
		return "strict-origin-when-cross-origin"
	}
}

// FetchOptions configures the underlying host HTTP dispatch. Every
// field is optional. An unset Mode, Credentials or Redirect is sent as
// its default (cors, same-origin, follow); an unset Cache or
// ReferrerPolicy is left nil on the carried options.
//
// Mode, Credentials and Redirect are applied to the outbound request
// via the "js.fetch:*" headers that Go's own net/http js/wasm
// transport reads and strips before the real network call, so they
// take effect for free on a GOOS=js build. Cache, Integrity, Referrer
// and ReferrerPolicy have no such stdlib hook: they are carried on the
// request's context (see FetchOptionsFromContext) for a
// platform-specific Doer to apply directly against its native fetch
// call; a plain *http.Client ignores them.
type FetchOptions struct {
	Cache          *Cache
	Credentials    *Credentials
	Integrity      string
	Mode           *Mode
	Redirect       *Redirect
	Referrer       string
	ReferrerPolicy *ReferrerPolicy
	// Timeout, if positive, is installed on the call's CancelGuard:
	// the call aborts with ErrTimedOut if no response arrives in time.
	Timeout time.Duration
}

func (o FetchOptions) apply(req *http.Request) *http.Request {
	mode := ModeCORS
	if o.Mode != nil {
		mode = *o.Mode
	}
	req.Header.Set("js.fetch:mode", mode.String())

	credentials := CredentialsSameOrigin
	if o.Credentials != nil {
		credentials = *o.Credentials
	}
	req.Header.Set("js.fetch:credentials", credentials.String())

	redirect := RedirectFollow
	if o.Redirect != nil {
		redirect = *o.Redirect
	}
	req.Header.Set("js.fetch:redirect", redirect.String())

	return req.WithContext(withFetchOptions(req.Context(), o))
}

type fetchOptionsKey struct{}

func withFetchOptions(ctx context.Context, o FetchOptions) context.Context {
	return context.WithValue(ctx, fetchOptionsKey{}, o)
}

// FetchOptionsFromContext recovers the FetchOptions a call was made
// with, for a custom Doer that wants to honor Cache, Integrity,
// Referrer or ReferrerPolicy against its own transport.
func FetchOptionsFromContext(ctx context.Context) (FetchOptions, bool) {
	o, ok := ctx.Value(fetchOptionsKey{}).(FetchOptions)
	return o, ok
}

// CallOption overrides FetchOptions for a single call.
type CallOption func(*FetchOptions)

// WithTimeout overrides the call's timeout.
func WithTimeout(d time.Duration) CallOption {
	return func(o *FetchOptions) { o.Timeout = d }
}

// WithCache overrides the call's cache directive.
func WithCache(c Cache) CallOption {
	return func(o *FetchOptions) { o.Cache = &c }
}

// WithCredentials overrides the call's credentials mode.
func WithCredentials(c Credentials) CallOption {
	return func(o *FetchOptions) { o.Credentials = &c }
}

// WithMode overrides the call's request mode.
func WithMode(m Mode) CallOption {
	return func(o *FetchOptions) { o.Mode = &m }
}

// WithRedirect overrides the call's redirect mode.
func WithRedirect(r Redirect) CallOption {
	return func(o *FetchOptions) { o.Redirect = &r }
}

// WithReferrer overrides the call's referrer.
func WithReferrer(referrer string) CallOption {
	return func(o *FetchOptions) { o.Referrer = referrer }
}

// WithReferrerPolicy overrides the call's referrer policy.
func WithReferrerPolicy(p ReferrerPolicy) CallOption {
	return func(o *FetchOptions) { o.ReferrerPolicy = &p }
}

// WithIntegrity overrides the call's subresource integrity string.
func WithIntegrity(integrity string) CallOption {
	return func(o *FetchOptions) { o.Integrity = integrity }
}
