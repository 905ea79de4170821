package domain

import (
	"fmt"
	"strings"
	"time"
)

type ReportStatus string

const (
	ReportStatusPendingReview ReportStatus = "รอตรวจสอบ"
	ReportStatusReceived      ReportStatus = "รับเรื่องร้องเรียน"
	ReportStatusResolved      ReportStatus = "ดำเนินการแก้ไขแล้ว"

	ReportStatusUnknown ReportStatus = ""
)

func ParseReportStatus(s string) (ReportStatus, error) {
	switch st := ReportStatus(strings.TrimSpace(s)); st {
	case ReportStatusPendingReview, ReportStatusReceived, ReportStatusResolved:
		return st, nil
	default:
		return ReportStatusUnknown, fmt.Errorf("unknown report status %q", s)
	}
}

// ReportTitle is one of the fixed complaint subjects offered to residents.
type ReportTitle string

const (
	ReportTitleRudeStaff           ReportTitle = "พนักงานไม่สุภาพ"
	ReportTitleMissedCollection    ReportTitle = "พนักงานไม่มาเก็บขยะ"
	ReportTitleUntidyCollection    ReportTitle = "พนักงานทำความสะอาดไม่เรียบร้อย"
	ReportTitleCannotSelectMonth   ReportTitle = "แอปพลิเคชันไม่สามารถเลือกเดือนที่ชำระได้"
	ReportTitleCannotAttachReceipt ReportTitle = "แอปพลิเคชันไม่สามารถเพิ่มใบเสร็จการชำระได้"
)

var reportTitles = []ReportTitle{
	ReportTitleRudeStaff,
	ReportTitleMissedCollection,
	ReportTitleUntidyCollection,
	ReportTitleCannotSelectMonth,
	ReportTitleCannotAttachReceipt,
}

// ReportTitles lists the selectable titles in display order.
func ReportTitles() []ReportTitle {
	out := make([]ReportTitle, len(reportTitles))
	copy(out, reportTitles)
	return out
}

func ParseReportTitle(s string) (ReportTitle, bool) {
	s = strings.TrimSpace(s)
	for _, t := range reportTitles {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// Report is a complaint ticket filed by a resident.
type Report struct {
	ID        string       `json:"id"`
	UserID    string       `json:"userId"`
	FirstName string       `json:"firstName"`
	Title     ReportTitle  `json:"reportTitle"`
	Location  string       `json:"location"`
	Details   string       `json:"details"`
	File      *string      `json:"file"`
	Status    ReportStatus `json:"status"`
	CreatedAt time.Time    `json:"createdAt"`
}

// ReportDraft is the unvalidated complaint form.
type ReportDraft struct {
	Title      string
	Location   string
	Details    string
	Attachment *Attachment
}
