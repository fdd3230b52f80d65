package common

// AuthorizationHeaderName carries the session token on REST requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix is accepted, but not required, in front of the token.
const BearerPrefix = "Bearer "

// RootFocusName is the name of the node anchoring every user's tree.
const RootFocusName = "root"
