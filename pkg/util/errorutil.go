package util

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

// Kind enumerates the failures the API reports to callers.
type Kind int

const (
	KindInternal Kind = iota
	KindAccountNotFound
	KindInvalidCredentials
	KindForbidden
	KindSuperAdminCannotAsk
	KindSuperAdminCannotWithdraw
	KindAlreadyRegistered
	KindDuplicateRequest
	KindBadRequest
)

// Kinds lists every declared Kind.
func Kinds() []Kind {
	return []Kind{
		KindInternal,
		KindAccountNotFound,
		KindInvalidCredentials,
		KindForbidden,
		KindSuperAdminCannotAsk,
		KindSuperAdminCannotWithdraw,
		KindAlreadyRegistered,
		KindDuplicateRequest,
		KindBadRequest,
	}
}

type kindInfo struct {
	code    string
	message string
	status  int
}

// describe is the single source of truth for code, message and status.
// Out of range values fall through to KindInternal.
func (k Kind) describe() kindInfo {
	switch k {
	case KindAccountNotFound:
		return kindInfo{"ACCOUNT_NOT_FOUND", "사용자 계정을 찾을 수 없습니다.", http.StatusUnauthorized}
	case KindInvalidCredentials:
		return kindInfo{"INVALID_CREDENTIALS", "아이디 또는 비밀번호 잘못 입력 되었습니다.", http.StatusUnauthorized}
	case KindForbidden:
		return kindInfo{"FORBIDDEN", "권한이 없습니다.", http.StatusUnauthorized}
	case KindSuperAdminCannotAsk:
		return kindInfo{"SUPER_ADMIN_CANNOT_ASK", "최고 관리자는 질문 할 수 없습니다.", http.StatusUnauthorized}
	case KindSuperAdminCannotWithdraw:
		return kindInfo{"SUPER_ADMIN_CANNOT_WITHDRAW", "최고 관리자는 탈퇴 요청을 할 수 없습니다.", http.StatusUnauthorized}
	case KindAlreadyRegistered:
		return kindInfo{"ALREADY_REGISTERED", "이미 가입된 정보가 있습니다.", http.StatusConflict}
	case KindDuplicateRequest:
		return kindInfo{"DUPLICATE_REQUEST", "이미 동일한 요청이 있습니다.", http.StatusConflict}
	case KindBadRequest:
		return kindInfo{"BAD_REQUEST", "잘못된 요청 입니다.", http.StatusBadRequest}
	default:
		return kindInfo{"INTERNAL_ERROR", "서버 오류가 발생했습니다.", http.StatusInternalServerError}
	}
}

// Code returns the stable machine-readable identifier of the kind.
func (k Kind) Code() string { return k.describe().code }

// Message returns the user-facing message of the kind.
func (k Kind) Message() string { return k.describe().message }

// Status returns the HTTP status reported for the kind.
func (k Kind) Status() int { return k.describe().status }

func (k Kind) String() string { return k.Code() }

// messageAliases keeps the English phrases some callers still send.
var messageAliases = map[string]Kind{
	"account not found":   KindAccountNotFound,
	"invalid credentials": KindInvalidCredentials,
	"forbidden":           KindForbidden,
	"duplicate":           KindAlreadyRegistered,
	"bad request":         KindBadRequest,
	"internal error":      KindInternal,
}

var messageKinds = func() map[string]Kind {
	m := make(map[string]Kind, len(messageAliases)+len(Kinds()))
	for alias, kind := range messageAliases {
		m[alias] = kind
	}
	for _, kind := range Kinds() {
		m[kind.Message()] = kind
	}
	return m
}()

// KindFromMessage resolves a free-text failure message to its Kind.
func KindFromMessage(message string) (Kind, bool) {
	kind, ok := messageKinds[message]
	return kind, ok
}

// Envelope is the uniform body returned for every failed request.
type Envelope struct {
	Status int    `json:"status"`
	Detail string `json:"detail"`
	Error  any    `json:"error"`
}

// Classify builds the envelope for a kind.
func Classify(kind Kind) Envelope {
	info := kind.describe()
	return Envelope{Status: info.status, Detail: info.message}
}

// ClassifyMessage builds the envelope for a free-text message. Unknown
// messages are reported as internal errors with the message kept as detail.
func ClassifyMessage(message string) Envelope {
	if kind, ok := KindFromMessage(message); ok {
		return Envelope{Status: kind.Status(), Detail: message}
	}
	return Envelope{Status: KindInternal.Status(), Detail: message}
}

// DomainError standardizes application errors.
type DomainError struct {
	Kind       Kind
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches another DomainError of the same kind, so callers can compare
// against the values returned by the constructors below.
func (e *DomainError) Is(target error) bool {
	var other *DomainError
	if !errors.As(target, &other) {
		return false
	}
	return other.Kind == e.Kind
}

// Envelope renders the error for the response body. The wrapped cause is
// only included when exposeCause is set.
func (e *DomainError) Envelope(exposeCause bool) Envelope {
	env := Envelope{Status: e.HTTPStatus, Detail: e.Message}
	switch {
	case len(e.Details) > 0:
		env.Error = e.Details
	case exposeCause && e.Err != nil:
		env.Error = e.Err.Error()
	}
	return env
}

// NewDomainError constructs a DomainError of the given kind.
func NewDomainError(kind Kind, details map[string]any, err error) *DomainError {
	return &DomainError{
		Kind:       kind,
		Message:    kind.Message(),
		HTTPStatus: kind.Status(),
		Details:    details,
		Err:        err,
	}
}

func NewAccountNotFound() error {
	return NewDomainError(KindAccountNotFound, nil, nil)
}

func NewInvalidCredentials() error {
	return NewDomainError(KindInvalidCredentials, nil, nil)
}

func NewForbidden() error {
	return NewDomainError(KindForbidden, nil, nil)
}

func NewConflict(kind Kind) error {
	if kind != KindDuplicateRequest {
		kind = KindAlreadyRegistered
	}
	return NewDomainError(kind, nil, nil)
}

func NewValidationError(details map[string]any) error {
	return NewDomainError(KindBadRequest, details, nil)
}

func NewInternalError(err error) error {
	return NewDomainError(KindInternal, nil, err)
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		kind := KindBadRequest
		if fiberErr.Code >= http.StatusInternalServerError {
			kind = KindInternal
		}
		return &DomainError{
			Kind:       kind,
			Message:    fiberErr.Message,
			HTTPStatus: fiberErr.Code,
			Err:        err,
		}
	}
	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return NewDomainError(KindBadRequest, nil, err)
	}
	return NewDomainError(KindInternal, nil, err)
}

// MapError is ToDomainError returned as a plain error.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	return ToDomainError(err)
}
