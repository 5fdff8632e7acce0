// Package session stores structured per-user state in a single cookie.
//
// A Session lives for one request. Load decodes the inbound cookie value with
// a Codec; a missing or invalid value yields an empty session. Content and Get
// return copies, and updates go through Set, Delete or SetContent, so Changed
// reports reliably whether the cookie must be written again:
//
//	s := session.New(cfg.Key, codec)
//	s.Load(ctx, raw, ok)
//	s.Set("user_id", 42)
//	if s.Changed() {
//		value, err := s.Encode(ctx)
//		// write value under s.Key()
//	}
//
// Two codecs are provided. SecureCodec keeps the content in the cookie,
// encrypted with AES-GCM and signed with HMAC-SHA256 using keys derived from
// the configured secret. StoreCodec keeps the content in a cache (memory or
// Redis) and puts only a random id in the cookie.
package session
