// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package status

import "net/http"

// namedCodes maps constant names accepted in declarations to their codes.
var namedCodes = map[string]Code{
	"CONTINUE":                        http.StatusContinue,
	"SWITCHING_PROTOCOLS":             http.StatusSwitchingProtocols,
	"PROCESSING":                      http.StatusProcessing,
	"EARLY_HINTS":                     http.StatusEarlyHints,
	"OK":                              http.StatusOK,
	"CREATED":                         http.StatusCreated,
	"ACCEPTED":                        http.StatusAccepted,
	"NON_AUTHORITATIVE_INFORMATION":   http.StatusNonAuthoritativeInfo,
	"NO_CONTENT":                      http.StatusNoContent,
	"RESET_CONTENT":                   http.StatusResetContent,
	"PARTIAL_CONTENT":                 http.StatusPartialContent,
	"MULTI_STATUS":                    http.StatusMultiStatus,
	"ALREADY_REPORTED":                http.StatusAlreadyReported,
	"IM_USED":                         http.StatusIMUsed,
	"MULTIPLE_CHOICES":                http.StatusMultipleChoices,
	"MOVED_PERMANENTLY":               http.StatusMovedPermanently,
	"FOUND":                           http.StatusFound,
	"SEE_OTHER":                       http.StatusSeeOther,
	"NOT_MODIFIED":                    http.StatusNotModified,
	"USE_PROXY":                       http.StatusUseProxy,
	"TEMPORARY_REDIRECT":              http.StatusTemporaryRedirect,
	"PERMANENT_REDIRECT":              http.StatusPermanentRedirect,
	"BAD_REQUEST":                     http.StatusBadRequest,
	"UNAUTHORIZED":                    http.StatusUnauthorized,
	"PAYMENT_REQUIRED":                http.StatusPaymentRequired,
	"FORBIDDEN":                       http.StatusForbidden,
	"NOT_FOUND":                       http.StatusNotFound,
	"METHOD_NOT_ALLOWED":              http.StatusMethodNotAllowed,
	"NOT_ACCEPTABLE":                  http.StatusNotAcceptable,
	"PROXY_AUTHENTICATION_REQUIRED":   http.StatusProxyAuthRequired,
	"REQUEST_TIMEOUT":                 http.StatusRequestTimeout,
	"CONFLICT":                        http.StatusConflict,
	"GONE":                            http.StatusGone,
	"LENGTH_REQUIRED":                 http.StatusLengthRequired,
	"PRECONDITION_FAILED":             http.StatusPreconditionFailed,
	"PAYLOAD_TOO_LARGE":               http.StatusRequestEntityTooLarge,
	"URI_TOO_LONG":                    http.StatusRequestURITooLong,
	"UNSUPPORTED_MEDIA_TYPE":          http.StatusUnsupportedMediaType,
	"RANGE_NOT_SATISFIABLE":           http.StatusRequestedRangeNotSatisfiable,
	"EXPECTATION_FAILED":              http.StatusExpectationFailed,
	"IM_A_TEAPOT":                     http.StatusTeapot,
	"MISDIRECTED_REQUEST":             http.StatusMisdirectedRequest,
	"UNPROCESSABLE_ENTITY":            http.StatusUnprocessableEntity,
	"LOCKED":                          http.StatusLocked,
	"FAILED_DEPENDENCY":               http.StatusFailedDependency,
	"TOO_EARLY":                       http.StatusTooEarly,
	"UPGRADE_REQUIRED":                http.StatusUpgradeRequired,
	"PRECONDITION_REQUIRED":           http.StatusPreconditionRequired,
	"TOO_MANY_REQUESTS":               http.StatusTooManyRequests,
	"REQUEST_HEADER_FIELDS_TOO_LARGE": http.StatusRequestHeaderFieldsTooLarge,
	"UNAVAILABLE_FOR_LEGAL_REASONS":   http.StatusUnavailableForLegalReasons,
	"INTERNAL_SERVER_ERROR":           http.StatusInternalServerError,
	"NOT_IMPLEMENTED":                 http.StatusNotImplemented,
	"BAD_GATEWAY":                     http.StatusBadGateway,
	"SERVICE_UNAVAILABLE":             http.StatusServiceUnavailable,
	"GATEWAY_TIMEOUT":                 http.StatusGatewayTimeout,
	"HTTP_VERSION_NOT_SUPPORTED":      http.StatusHTTPVersionNotSupported,
	"VARIANT_ALSO_NEGOTIATES":         http.StatusVariantAlsoNegotiates,
	"INSUFFICIENT_STORAGE":            http.StatusInsufficientStorage,
	"LOOP_DETECTED":                   http.StatusLoopDetected,
	"NOT_EXTENDED":                    http.StatusNotExtended,
	"NETWORK_AUTHENTICATION_REQUIRED": http.StatusNetworkAuthenticationRequired,
}

// codeNames is the inverse of namedCodes.
var codeNames = func() map[Code]string {
	m := make(map[Code]string, len(namedCodes))
	for name, code := range namedCodes {
		m[code] = name
	}

	return m
}()
