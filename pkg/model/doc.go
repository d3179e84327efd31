// Package model defines the shapes shared by every layer of the order form:
// the uniform dropdown Option, the item detail used to auto-fill pricing, the
// flat records returned by the remote backend, and the form field state.
//
// Backend records keep the backend's JSON field names (nama_negara,
// id_pelabuhan, harga, ...) so the remote package can decode list responses
// directly. Everything above the remote package only sees Option and
// ItemOption.
package model
