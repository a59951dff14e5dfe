// Package getbible implements a client for the getbible.net JSON API.
//
// The API serves whole books as JSON-P: the JSON body is wrapped in
// parentheses and terminated with a semicolon, and a missing version or
// book is signalled by the literal payload "NULL" instead of an HTTP
// error status. The client strips the wrapper, detects the NULL sentinel,
// and decodes the chapter/verse structure into plain Go maps.
//
// Transient transport failures and 5xx responses are retried with
// exponential backoff; 4xx responses and the NULL sentinel are permanent.
package getbible
