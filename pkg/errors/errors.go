package errors

func (d Definition) Error() string {
	return d.Message
}

// Definition 表示业务错误码及默认信息。
type Definition struct {
	Code    string
	Message string
}

// 运营接口错误。
var (
	Unauthorized   = Definition{Code: "UNAUTHORIZED", Message: "Unauthorized"}
	InvalidRequest = Definition{Code: "INVALID_REQUEST", Message: "Missing required fields"}
	SendFailed     = Definition{Code: "SEND_FAILED", Message: "Failed to send message"}
)

// 定位处理错误。
var (
	LocationNotFound = Definition{Code: "LOCATION_NOT_FOUND", Message: "No cached location for sender"}
	LocationExpired  = Definition{Code: "LOCATION_EXPIRED", Message: "Cached location expired"}
	LocationPinned   = Definition{Code: "LOCATION_PINNED", Message: "Saved map location rejected"}
)

// 考勤网关错误。
var (
	GatewayUnavailable = Definition{Code: "GATEWAY_UNAVAILABLE", Message: "Attendance gateway unavailable"}
	GatewayBadResponse = Definition{Code: "GATEWAY_BAD_RESPONSE", Message: "Attendance gateway returned malformed response"}
)

// Lookup 提供错误码查询能力。
var Lookup = map[string]Definition{
	Unauthorized.Code:       Unauthorized,
	InvalidRequest.Code:     InvalidRequest,
	SendFailed.Code:         SendFailed,
	LocationNotFound.Code:   LocationNotFound,
	LocationExpired.Code:    LocationExpired,
	LocationPinned.Code:     LocationPinned,
	GatewayUnavailable.Code: GatewayUnavailable,
	GatewayBadResponse.Code: GatewayBadResponse,
}

// Get 根据错误码返回 Definition，若不存在则返回空 Definition。
func Get(code string) Definition {
	if def, ok := Lookup[code]; ok {
		return def
	}
	return Definition{Code: code, Message: "Unexpected error"}
}
