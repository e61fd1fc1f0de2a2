package availability

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyAndScopes(t *testing.T) {
	k := Key{BarberID: 4, Date: "2030-06-03", Services: []uint{1, 3, 12}}

	assert.Equal(t, "1,3,12", k.ServicesField())
	assert.Equal(t, "slots:4:2030-06-03", DayScope(k.BarberID, k.Date))
	assert.True(t, strings.HasPrefix(DayScope(4, k.Date), BarberScope(4)))

	// barber 4 must not match barber 40
	assert.False(t, strings.HasPrefix(DayScope(40, k.Date), BarberScope(4)))
}
