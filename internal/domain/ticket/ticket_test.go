package ticket

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTicket(id string, date time.Time) Ticket {
	return Ticket{
		ID:      id,
		Date:    date,
		Name:    "Amina Bello",
		Email:   "amina@example.com",
		Message: "Where is my order?",
	}
}

func TestPatch_HandledTogglesBothWays(t *testing.T) {
	tk := sampleTicket("t_1", time.Now())

	SetHandled(true).Apply(&tk)
	assert.True(t, tk.Handled)

	SetHandled(false).Apply(&tk)
	assert.False(t, tk.Handled)

	Patch{}.Apply(&tk)
	assert.False(t, tk.Handled)
}

func TestFilter(t *testing.T) {
	tickets := []Ticket{
		sampleTicket("t_1", time.Now()),
		sampleTicket("t_2", time.Now()),
	}
	tickets[1].Name = "Tunde Okafor"
	tickets[1].Phone = "08099887766"
	tickets[1].Handled = true

	assert.Len(t, Filter(tickets, "", false), 2)
	assert.Len(t, Filter(tickets, "", true), 1)
	assert.Len(t, Filter(tickets, "tunde", false), 1)
	assert.Empty(t, Filter(tickets, "tunde", true))
	assert.Len(t, Filter(tickets, "0809", false), 1)
	assert.Len(t, Filter(tickets, "ORDER", false), 2)
}

func TestPage(t *testing.T) {
	var tickets []Ticket
	base := time.Now()
	for i := 0; i < 12; i++ {
		tickets = append(tickets, sampleTicket(fmt.Sprintf("t_%d", i), base.Add(time.Duration(i)*time.Minute)))
	}
	SortNewestFirst(tickets)

	first, pages := Page(tickets, 1)
	assert.Equal(t, 3, pages)
	require.Len(t, first, PageSize)
	assert.Equal(t, "t_11", first[0].ID)

	last, _ := Page(tickets, 3)
	require.Len(t, last, 2)
	assert.Equal(t, "t_0", last[1].ID)

	past, pages := Page(tickets, 9)
	assert.Empty(t, past)
	assert.Equal(t, 3, pages)

	none, pages := Page(nil, 1)
	assert.Empty(t, none)
	assert.Equal(t, 1, pages)
}

func TestTicket_PhoneOmittedWhenEmpty(t *testing.T) {
	b, err := json.Marshal(sampleTicket("t_1", time.Now()))
	require.NoError(t, err)
	assert.NotContains(t, string(b), "phone")

	withPhone := sampleTicket("t_2", time.Now())
	withPhone.Phone = "08012345678"
	b, err = json.Marshal(withPhone)
	require.NoError(t, err)

	var back Ticket
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, "08012345678", back.Phone)
}

func TestNewID_Format(t *testing.T) {
	assert.Equal(t, "t_1700000000000", NewID(time.UnixMilli(1700000000000)))
}
