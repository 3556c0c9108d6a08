package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// sequence issuer access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// Currency is the display symbol of the ledger's native unit.
const Currency = "ETH"
