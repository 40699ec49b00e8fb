package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// PDFContentType is the only content type accepted on upload and returned on download.
const PDFContentType = "application/pdf"
