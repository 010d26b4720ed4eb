package generator

import (
	"errors"
	"fmt"

	"github.com/Zachdehooge/fireguard-dashboard/internal/control"
	"github.com/Zachdehooge/fireguard-dashboard/internal/fetcher"
)

// Level is the kind of a transient notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notice is a transient toast shown after an action settles.
type Notice struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Notification texts.
const (
	MsgPredictOK      = "Phân tích thành công!"
	MsgPredictLoading = "Đang phân tích..."
	MsgStatsOK        = "Đã tải thống kê thành công"
	MsgStatsFailed    = "❌ Lỗi tải thống kê"
	MsgHotspotsFailed = "❌ Lỗi tải điểm nóng"
	MsgMapFailed      = "❌ Lỗi tải bản đồ"
	MsgBusy           = "⏳ Yêu cầu trước chưa hoàn tất, vui lòng chờ"
	MsgPopupAPI       = "❌ Lỗi API"
	MsgPopupNetwork   = "❌ Lỗi kết nối"
)

func Info(msg string) Notice    { return Notice{Level: LevelInfo, Message: msg} }
func Success(msg string) Notice { return Notice{Level: LevelSuccess, Message: msg} }
func Failure(msg string) Notice { return Notice{Level: LevelError, Message: msg} }

// PredictFailed is the notice for a failed manual prediction.
func PredictFailed(err error) Notice {
	if errors.Is(err, control.ErrBusy) {
		return Failure(MsgBusy)
	}
	return Failure("❌ Lỗi: " + failureReason(err))
}

// HotspotsLoaded is the notice after a hotspot refresh. An empty window is
// informational, not an error.
func HotspotsLoaded(count, days int) Notice {
	if count == 0 {
		return Info(fmt.Sprintf("ℹ️ Không có điểm nóng trong %d ngày qua", days))
	}
	return Success(fmt.Sprintf("✅ Đã tải %s điểm nóng (%d ngày)", FormatCount(count), days))
}

// PopupFailure returns the popup text for a failed realtime prediction.
func PopupFailure(err error) string {
	var apiErr *fetcher.APIError
	var statusErr *fetcher.StatusError
	if errors.As(err, &apiErr) || errors.As(err, &statusErr) {
		return MsgPopupAPI
	}
	return MsgPopupNetwork
}

// failureReason condenses an error into the short text of a toast.
func failureReason(err error) string {
	var apiErr *fetcher.APIError
	var statusErr *fetcher.StatusError
	switch {
	case errors.As(err, &apiErr), errors.As(err, &statusErr):
		return "API Error"
	case errors.Is(err, fetcher.ErrInvalidDays):
		return err.Error()
	default:
		return "Failed to fetch"
	}
}
