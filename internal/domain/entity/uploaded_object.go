package entity

// UploadedObject is the provider-side result of a relay. The object and its
// public permission live on in the provider; nothing here manages them
// afterwards.
type UploadedObject struct {
	ID  string
	URL string
}
