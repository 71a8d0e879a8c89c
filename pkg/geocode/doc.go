// Package geocode resolves free-form place names to coordinates through the
// public Nominatim search endpoint. A lookup returns at most one result, the
// provider's best match, with latitude, longitude, and a display name.
package geocode
