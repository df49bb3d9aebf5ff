package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xerschedule/core/internal/schederr"
)

const xerFixture = "ERMHDR\t1\t2026-01-01\n" +
	"%T\tPROJECT\n" +
	"%F\tproj_id\tproj_short_name\n" +
	"%R\tP1\tDemo\n" +
	"%E\n" +
	"%T\tTASK\n" +
	"%F\ttask_id\tproj_id\ttarget_drtn_hr_cnt\n" +
	"%R\tT1\tP1\t8\n" +
	"%R\tT2\tP1\t8\n" +
	"%E\n" +
	"%T\tTASKPRED\n" +
	"%F\ttask_id\tpred_task_id\tpred_type\n" +
	"%R\tT2\tT1\tPR_FS\n" +
	"%E\n"

const xmlFixture = `<?xml version="1.0" encoding="UTF-8"?>
<Project><Title>Demo</Title><UID>1</UID><Tasks>
<Task><UID>1</UID><Name>A</Name><Duration>PT8H0M0S</Duration></Task>
</Tasks></Project>`

func TestParseRoutesXERAndRunsCPM(t *testing.T) {
	schedule, _, err := Parse([]byte(xerFixture))
	require.NoError(t, err)
	require.Len(t, schedule.Tasks, 2)
	assert.NotNil(t, schedule.Tasks[0].EarlyStart)
	assert.NotNil(t, schedule.Tasks[0].TotalFloatHours)
}

func TestParseRoutesXMLByMagicSniff(t *testing.T) {
	schedule, _, err := Parse([]byte(xmlFixture))
	require.NoError(t, err)
	require.Len(t, schedule.Tasks, 1)
	assert.NotNil(t, schedule.Tasks[0].EarlyStart)
}

func TestParseEmptyInputFails(t *testing.T) {
	schedule, _, err := Parse(nil)
	require.Error(t, err)
	assert.Nil(t, schedule)

	var schedErr *schederr.Error
	require.ErrorAs(t, err, &schedErr)
	assert.Equal(t, schederr.KindEmptyFile, schedErr.Kind)
}

func TestParseMPPMagicWithoutEmbeddedXMLReportsUnsupported(t *testing.T) {
	data := append([]byte{}, mppMagic...)
	data = append(data, make([]byte, 512)...)

	schedule, _, err := Parse(data)
	require.Error(t, err)
	assert.Nil(t, schedule)

	var schedErr *schederr.Error
	if require.ErrorAs(t, err, &schedErr); schedErr != nil {
		assert.Equal(t, schederr.KindBinaryFormatUnsupport, schedErr.Kind)
	}
}

func TestLooksLikeMPPRequiresExactMagic(t *testing.T) {
	assert.True(t, looksLikeMPP(mppMagic))
	assert.False(t, looksLikeMPP([]byte("ERMHDR\t1")))
}

func TestLooksLikeXMLSniffsLeadingWindow(t *testing.T) {
	assert.True(t, looksLikeXML([]byte("<?xml version=\"1.0\"?><Project/>")))
	assert.False(t, looksLikeXML([]byte("ERMHDR\t1\t2026-01-01")))
}
