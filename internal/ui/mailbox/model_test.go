package mailbox

import (
	"testing"

	"github.com/nhle/mail-assistant/internal/keys"
	"github.com/nhle/mail-assistant/internal/model"
)

func sampleMessages() []*model.Message {
	return []*model.Message{
		{
			ID:       "3",
			Subject:  "Invoice #102 overdue",
			Sender:   `"Jane Doe" <jane@example.com>`,
			Category: model.CategoryBilling,
			Urgent:   true,
		},
		{
			ID:       "2",
			Subject:  "Order confirmation",
			Sender:   "shop@example.com",
			Category: model.CategoryOrder,
		},
		{
			ID:       "1",
			Subject:  "",
			Sender:   "",
			Category: model.CategoryUnclassified,
		},
	}
}

func TestSelectedMessageEmptyList(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 80, 24)

	if got := m.SelectedMessage(); got != nil {
		t.Errorf("SelectedMessage() = %v, want nil", got)
	}
}

func TestSetMessagesSelectsFirst(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 80, 24)
	m.SetMessages(sampleMessages())

	sel := m.SelectedMessage()
	if sel == nil {
		t.Fatal("SelectedMessage() = nil, want first message")
	}
	if sel.ID != "3" {
		t.Errorf("SelectedMessage().ID = %q, want %q", sel.ID, "3")
	}
}

func TestMessageItemTitleFallback(t *testing.T) {
	item := MessageItem{Message: &model.Message{ID: "1"}}

	if got := item.Title(); got != "(no subject)" {
		t.Errorf("Title() = %q, want %q", got, "(no subject)")
	}
}

func TestMessageItemFilterValue(t *testing.T) {
	item := MessageItem{Message: &model.Message{
		Subject: "Invoice #102 overdue",
		Sender:  "jane@example.com",
	}}

	got := item.FilterValue()
	want := "Invoice #102 overdue jane@example.com"
	if got != want {
		t.Errorf("FilterValue() = %q, want %q", got, want)
	}
}

func TestApplyQueryFiltersBySubjectAndSender(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 80, 24)
	m.SetMessages(sampleMessages())

	m.query = "invoice"
	m.applyQuery()
	if sel := m.SelectedMessage(); sel == nil || sel.ID != "3" {
		t.Fatalf("query %q: selected = %v, want message 3", m.query, sel)
	}

	m.query = "shop@example.com"
	m.applyQuery()
	if sel := m.SelectedMessage(); sel == nil || sel.ID != "2" {
		t.Fatalf("query %q: selected = %v, want message 2", m.query, sel)
	}

	m.query = "no such thing"
	m.applyQuery()
	if sel := m.SelectedMessage(); sel != nil {
		t.Fatalf("query %q: selected = %v, want nil", m.query, sel)
	}
}
