// Package pagination folds the pages of a paginated MyDataShare API response
// into one logical response.
//
// The API signals that more data exists with a next_offset key; the transport
// collects every page and hands them to Combine once:
//
//	combined, err := pagination.Combine(pages)
//	if errors.Is(err, pagination.ErrEmptyInput) {
//	    // nothing was fetched
//	}
//
// Object-valued top-level keys are merged with later pages winning per
// sub-key. The "translations" pool is merged two levels deep so sibling
// languages survive. Scalar and list values keep the first page's value.
package pagination
