package services

import (
	"bytes"
	"mime/multipart"
	"net/textproto"
	"os"
	"strings"
	"testing"

	"qc-laptop/models"
	"qc-laptop/repositories"
	"qc-laptop/types"
	"qc-laptop/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartSessionRegistersUnknownLaptop(t *testing.T) {
	f := newFixture(t)

	res := f.start(t, "  SN-001 ")

	assert.True(t, res.IsNewLaptop)
	assert.Equal(t, "SN-001", res.Laptop.SerialNumber)
	assert.Equal(t, types.LaptopInQC, res.Laptop.Status)
	assert.Equal(t, types.OutcomePending, res.Session.OverallStatus)
	assert.Equal(t, f.staff.UserID, res.Session.QCUserID)
	assert.Len(t, res.ChecklistItems, 16)
	for _, it := range res.ChecklistItems {
		assert.Equal(t, types.ItemPending, it.Status)
		assert.False(t, it.IsChecked)
		assert.Equal(t, res.Session.ID, it.QCSessionID)
	}

	history := f.historyOf(t, res.Laptop.ID)
	require.Len(t, history, 1)
	assert.Equal(t, types.ActionQCStart, history[0].ActionType)
	assert.Equal(t, "QC dimulai oleh Staff", history[0].Action)
	assert.Nil(t, history[0].PreviousStatus)
	require.NotNil(t, history[0].NewStatus)
	assert.Equal(t, types.LaptopInQC, *history[0].NewStatus)
}

func TestStartSessionOnKnownLaptop(t *testing.T) {
	f := newFixture(t)
	laptop, err := f.laptops.Register(RegisterLaptopInput{SerialNumber: "SN-010"}, f.leader)
	require.NoError(t, err)

	res := f.start(t, "SN-010")

	assert.False(t, res.IsNewLaptop)
	assert.Equal(t, laptop.ID, res.Laptop.ID)
	assert.Equal(t, types.LaptopInQC, res.Laptop.Status)

	history := f.historyOf(t, laptop.ID)
	require.Len(t, history, 2)
	assert.Equal(t, types.ActionQCStart, history[0].ActionType)
	require.NotNil(t, history[0].PreviousStatus)
	assert.Equal(t, types.LaptopPending, *history[0].PreviousStatus)
}

func TestStartSessionTwiceKeepsOneLaptop(t *testing.T) {
	f := newFixture(t)

	first := f.start(t, "SN-020")
	second := f.start(t, "SN-020")

	assert.Equal(t, first.Laptop.ID, second.Laptop.ID)
	assert.False(t, second.IsNewLaptop)
	assert.NotEqual(t, first.Session.ID, second.Session.ID)

	var laptops int64
	require.NoError(t, f.db.Model(&models.Laptop{}).Where("serial_number = ?", "SN-020").Count(&laptops).Error)
	assert.EqualValues(t, 1, laptops)

	n, err := repositories.NewQCRepository(f.db).CountSessionsByLaptop(first.Laptop.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestStartSessionRequiresSerial(t *testing.T) {
	f := newFixture(t)
	_, err := f.qc.StartSession(StartSessionInput{SerialNumber: "   "}, f.staff)
	assert.True(t, utils.IsKind(err, utils.KindValidation))
}

func TestSubmitFailThenPass(t *testing.T) {
	f := newFixture(t)
	res := f.start(t, "SN-001")
	keyboard := res.ChecklistItems[1]

	out, err := f.qc.SubmitSession(res.Session.ID, validSubmit(
		SubmittedItem{ID: res.ChecklistItems[0].ID, IsChecked: true, Status: "pass"},
		SubmittedItem{ID: keyboard.ID, IsChecked: true, Status: "fail", Notes: "tombol F rusak"},
	), f.staff)
	require.NoError(t, err)
	assert.Equal(t, types.OutcomeFail, out.OverallStatus)
	assert.Equal(t, types.LaptopNeedsRepair, out.LaptopStatus)
	assert.True(t, out.HasFailures)
	assert.False(t, out.IsEdit)

	require.Len(t, f.notifier.notices, 1)
	notice := f.notifier.notices[0]
	assert.Equal(t, "SN-001", notice.SerialNumber)
	assert.Equal(t, "Budi", notice.OfficerName)
	assert.Equal(t, []string{keyboard.ItemName}, notice.FailedItems)

	detail, err := f.qc.GetSession(res.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, "Budi", detail.QCName)
	assert.Equal(t, "R1", detail.QCRoom)
	assert.Equal(t, types.LaptopNeedsRepair, detail.LaptopStatus)
	require.NotNil(t, detail.QCOfficer)
	assert.Equal(t, "Staff", *detail.QCOfficer)

	// resubmit sebagai edit
	out, err = f.qc.SubmitSession(res.Session.ID, validSubmit(
		SubmittedItem{ID: keyboard.ID, IsChecked: true, Status: "pass"},
	), f.leader)
	require.NoError(t, err)
	assert.Equal(t, types.OutcomePass, out.OverallStatus)
	assert.Equal(t, types.LaptopPassedQC, out.LaptopStatus)
	assert.False(t, out.HasFailures)
	assert.True(t, out.IsEdit)
	assert.Len(t, f.notifier.notices, 1)

	history := f.historyOf(t, res.Laptop.ID)
	require.Len(t, history, 3)
	assert.Equal(t, types.ActionQCEdit, history[0].ActionType)
	assert.Equal(t, "QC diedit - LULUS", history[0].Action)
	assert.Equal(t, types.ActionQCComplete, history[1].ActionType)
	assert.Equal(t, "QC selesai - PERLU PERBAIKAN", history[1].Action)
	require.NotNil(t, history[0].PreviousStatus)
	assert.Equal(t, types.LaptopNeedsRepair, *history[0].PreviousStatus)
}

func TestSubmitValidation(t *testing.T) {
	f := newFixture(t)
	res := f.start(t, "SN-030")

	in := validSubmit()
	in.Room = " "
	_, err := f.qc.SubmitSession(res.Session.ID, in, f.staff)
	require.True(t, utils.IsKind(err, utils.KindValidation))
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, map[string]string{"qc_room": "required"}, appErr.Fields)

	in = validSubmit()
	in.OfficerName, in.Table = "", "\t"
	_, err = f.qc.SubmitSession(res.Session.ID, in, f.staff)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, map[string]string{"qc_name": "required", "qc_table": "required"}, appErr.Fields)

	in = validSubmit()
	in.Line = strings.Repeat("L", 51)
	_, err = f.qc.SubmitSession(res.Session.ID, in, f.staff)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, map[string]string{"qc_line": "max"}, appErr.Fields)

	_, err = f.qc.SubmitSession(res.Session.ID, validSubmit(
		SubmittedItem{ID: res.ChecklistItems[0].ID, Status: "broken"},
	), f.staff)
	assert.True(t, utils.IsKind(err, utils.KindValidation))

	_, err = f.qc.SubmitSession(types.SnowflakeID(999), validSubmit(), f.staff)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))

	// tidak ada yang berubah
	detail, err := f.qc.GetSession(res.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, types.OutcomePending, detail.OverallStatus)
	assert.Equal(t, types.LaptopInQC, detail.LaptopStatus)
}

func TestSubmitIgnoresItemsOfOtherSessions(t *testing.T) {
	f := newFixture(t)
	a := f.start(t, "SN-040")
	b := f.start(t, "SN-041")

	out, err := f.qc.SubmitSession(a.Session.ID, validSubmit(
		SubmittedItem{ID: b.ChecklistItems[0].ID, Status: "fail"},
	), f.staff)
	require.NoError(t, err)
	assert.Equal(t, types.OutcomePass, out.OverallStatus)

	item, err := repositories.NewQCRepository(f.db).FindItem(b.ChecklistItems[0].ID)
	require.NoError(t, err)
	assert.Equal(t, types.ItemPending, item.Status)
}

func TestUpdateChecklistItemIsPartial(t *testing.T) {
	f := newFixture(t)
	res := f.start(t, "SN-050")
	target := res.ChecklistItems[2]

	status := "fail"
	item, err := f.qc.UpdateChecklistItem(target.ID, ItemUpdate{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, types.ItemFail, item.Status)
	assert.False(t, item.IsChecked)
	assert.Equal(t, target.ItemName, item.ItemName)

	checked := true
	item, err = f.qc.UpdateChecklistItem(target.ID, ItemUpdate{IsChecked: &checked})
	require.NoError(t, err)
	assert.True(t, item.IsChecked)
	assert.Equal(t, types.ItemFail, item.Status)

	bad := "maybe"
	_, err = f.qc.UpdateChecklistItem(target.ID, ItemUpdate{Status: &bad})
	assert.True(t, utils.IsKind(err, utils.KindValidation))

	_, err = f.qc.UpdateChecklistItem(types.SnowflakeID(12345), ItemUpdate{IsChecked: &checked})
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
}

func TestDeleteLastSessionRemovesLaptop(t *testing.T) {
	f := newFixture(t)
	res := f.start(t, "SN-060")

	require.NoError(t, f.qc.DeleteSession(res.Session.ID, f.leader))

	_, err := f.laptops.FindBySerial("SN-060")
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
	assert.Empty(t, f.historyOf(t, res.Laptop.ID))

	items, err := repositories.NewQCRepository(f.db).Items(res.Session.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestDeleteOneOfTwoSessionsKeepsLaptop(t *testing.T) {
	f := newFixture(t)
	first := f.start(t, "SN-061")
	f.start(t, "SN-061")

	require.NoError(t, f.qc.DeleteSession(first.Session.ID, f.leader))

	found, err := f.laptops.FindBySerial("SN-061")
	require.NoError(t, err)
	assert.Equal(t, types.LaptopInQC, found.Status)
	assert.Len(t, found.QCHistory, 1)
	assert.Len(t, f.historyOf(t, first.Laptop.ID), 2)
}

func TestDeleteSessionGuards(t *testing.T) {
	f := newFixture(t)
	res := f.start(t, "SN-062")

	err := f.qc.DeleteSession(res.Session.ID, f.staff)
	assert.True(t, utils.IsKind(err, utils.KindForbidden))

	err = f.qc.DeleteSession(types.SnowflakeID(777), f.leader)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
}

type upload struct {
	name, contentType, body string
}

func fileHeaders(t *testing.T, files ...upload) []*multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range files {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", `form-data; name="photos"; filename="`+f.name+`"`)
		h.Set("Content-Type", f.contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write([]byte(f.body))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	return form.File["photos"]
}

func TestUploadAndDeleteAttachment(t *testing.T) {
	f := newFixture(t)
	res := f.start(t, "SN-070")

	attachments, err := f.qc.UploadAttachments(res.Session.ID,
		fileHeaders(t, upload{"layar.PNG", "image/png", "fake-png"}), "retak di pojok", f.staff)
	require.NoError(t, err)
	require.Len(t, attachments, 1)
	a := attachments[0]
	assert.Equal(t, "layar.PNG", a.FileName)
	assert.Equal(t, "image/png", a.FileType)
	assert.EqualValues(t, len("fake-png"), a.FileSize)
	require.NotNil(t, a.Description)
	assert.Equal(t, "retak di pojok", *a.Description)
	assert.FileExists(t, a.FilePath)

	detail, err := f.qc.GetSession(res.Session.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Attachments, 1)

	require.NoError(t, f.qc.DeleteAttachment(a.ID))
	_, statErr := os.Stat(a.FilePath)
	assert.True(t, os.IsNotExist(statErr))

	err = f.qc.DeleteAttachment(a.ID)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
}

func TestUploadAttachmentsRejects(t *testing.T) {
	f := newFixture(t)
	res := f.start(t, "SN-071")

	_, err := f.qc.UploadAttachments(res.Session.ID, nil, "", f.staff)
	assert.True(t, utils.IsKind(err, utils.KindValidation))

	_, err = f.qc.UploadAttachments(res.Session.ID,
		fileHeaders(t, upload{"notes.pdf", "application/pdf", "%PDF"}), "", f.staff)
	assert.True(t, utils.IsKind(err, utils.KindValidation))

	_, err = f.qc.UploadAttachments(res.Session.ID, fileHeaders(t,
		upload{"a.jpg", "image/jpeg", "a"},
		upload{"b.jpg", "image/jpeg", "b"},
		upload{"c.jpg", "image/jpeg", "c"},
	), "", f.staff)
	assert.True(t, utils.IsKind(err, utils.KindValidation))

	_, err = f.qc.UploadAttachments(types.SnowflakeID(404),
		fileHeaders(t, upload{"a.jpg", "image/jpeg", "a"}), "", f.staff)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
}

func TestListSessionsFilters(t *testing.T) {
	f := newFixture(t)
	failed := f.start(t, "SN-080")
	passed := f.start(t, "SN-081")
	f.start(t, "XY-999")

	_, err := f.qc.SubmitSession(failed.Session.ID, validSubmit(
		SubmittedItem{ID: failed.ChecklistItems[0].ID, Status: "fail"},
	), f.staff)
	require.NoError(t, err)
	_, err = f.qc.SubmitSession(passed.Session.ID, validSubmit(), f.staff)
	require.NoError(t, err)

	all, page, err := f.qc.ListSessions(SessionQuery{}, utils.Paging{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.EqualValues(t, 3, page.Total)

	rows, _, err := f.qc.ListSessions(SessionQuery{Status: "fail"}, utils.Paging{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, failed.Session.ID, rows[0].ID)

	rows, _, err = f.qc.ListSessions(SessionQuery{Search: "sn-08"}, utils.Paging{})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	// '_' bukan wildcard
	rows, _, err = f.qc.ListSessions(SessionQuery{Search: "_"}, utils.Paging{})
	require.NoError(t, err)
	assert.Empty(t, rows)

	rows, page, err = f.qc.ListSessions(SessionQuery{}, utils.Paging{Page: 2, PerPage: 2})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.True(t, page.HasPrev)
	assert.False(t, page.HasNext)

	_, _, err = f.qc.ListSessions(SessionQuery{Status: "done"}, utils.Paging{})
	assert.True(t, utils.IsKind(err, utils.KindValidation))
}

func TestChecklistTemplate(t *testing.T) {
	tpl := Template()
	assert.Len(t, tpl.Hardware, 13)
	assert.Len(t, tpl.Software, 3)

	tpl.Hardware[0] = "diubah"
	assert.NotEqual(t, "diubah", Template().Hardware[0])

	items := SeedChecklist(types.SnowflakeID(1))
	require.Len(t, items, 16)
	assert.Equal(t, types.CategoryHardware, items[0].Category)
	assert.Equal(t, 1, items[0].Position)
	assert.Equal(t, types.CategorySoftware, items[13].Category)
	assert.Equal(t, 1, items[13].Position)
}
