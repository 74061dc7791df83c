package mtg

import (
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan(t *testing.T) {
	var (
		typ int8 = 1
		uid      = uuid.Must(uuid.NewV4())
		str      = "123"
	)

	body, err := Encode(typ, uid.String(), str)
	require.Nil(t, err)

	var (
		dtyp int8
		duid string
		dstr string
	)

	remain, err := Scan(body, &dtyp)
	require.Nil(t, err)
	assert.Equal(t, typ, dtyp)

	remain, err = Scan(remain, &duid, &dstr)
	require.Nil(t, err)
	assert.Equal(t, uid.String(), duid)
	assert.Equal(t, str, dstr)
	assert.Empty(t, remain)
}
