/*
Typed client for the Tumblr v2 HTTP API.

[APIClient] wraps an [http.Client] and provides the public read endpoints: blog info and avatars, posts, notes, likes, and tag search. Every request asks for Neue Post Format content ("npf=true") and carries the consumer key as "api_key". Responses are unwrapped from the standard {meta, response, errors} envelope; callers only see the typed payload from the [github.com/atpstorages/gotumblr/api/tumblr] package.

Endpoints which take a blog accept a [tumblr.Identifier]: either a raw [tumblr.BlogName] or a previously fetched *[tumblr.Blog].

[OAuthClient] adds an OAuth2 authorization-code session ([OAuthAuth]) and the endpoints which require one: blocks, follows, queue, drafts, submissions, and the user endpoints. Before each authorized request the access token expiry is checked; expired tokens are refreshed first when the session has the "offline_access" scope, and otherwise the request fails with [OAuthRefreshError] without being sent.

Errors are explicit and typed: [TransportError] for failed round trips, [APIError] for non-2xx responses, [DecodeError] for unexpected payloads (including empty results, wrapping [ErrNotFound]), and [OAuthInitError] / [OAuthRefreshError] for the token lifecycle. Retries of 429/500/503 responses are left to the HTTP client; see [github.com/atpstorages/gotumblr/util.RobustHTTPClient]. The client itself never re-sends a request.

The HTTP client must not follow redirects: [APIClient.BlogAvatar] reads the Location header of the redirect response.
*/
package client
