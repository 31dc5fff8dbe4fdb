// Package body decodes the payload of the request installed in a context.
//
// The raw bytes are buffered once by the request package, decompressed with
// the decoders registered for the Content-Encoding header and parsed by
// Content-Type:
//
//	application/json                   -> any (json.Unmarshal result)
//	multipart/form-data                -> map[string]any
//	application/x-www-form-urlencoded  -> map[string]any
//	anything else                      -> string
//
// Every predicate and the parsed value are cached per request:
//
//	func createUser(ctx context.Context) (any, error) {
//		if !body.IsJSON(ctx) {
//			return nil, response.ErrUnsupportedMediaType
//		}
//		var u User
//		if err := body.Decode(ctx, &u); err != nil {
//			return nil, err
//		}
//		return u, nil
//	}
//
// Malformed payloads fail with response.ErrBadRequest, unknown content
// encodings with response.ErrUnsupportedMediaType.
package body
