package controller

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/course-cart-simulator/internal/dom"
	"github.com/fairyhunter13/course-cart-simulator/internal/model"
	"github.com/fairyhunter13/course-cart-simulator/internal/render"
)

const hostPage = `<!doctype html><html><body>
<aside data-cart-list data-credits-remaining="15" data-currency="USD">
  <div data-cart-items></div>
  <p>Remaining: <span data-credit-remaining></span></p>
  <p>Fees: <span data-fee-estimate></span></p>
</aside>
<select class="section-picker" data-course-code="CS101" data-course-title="Intro to Programming">
  <option value="">Choose a section</option>
  <option value="cs-1" data-section-label="Section 01" data-schedule="Mon 09:00" data-credits="3" data-fee="120.00">01</option>
  <option value="cs-2" data-section-label="Section 02" data-schedule="Wed 13:00" data-credits="3" data-fee="150.00">02</option>
</select>
<select class="section-picker" data-course-code="MATH201" data-credits="4">
  <option value="">Choose a section</option>
  <option value="m-1" data-section-label="Section 01" data-schedule="Tue 10:00" data-fee="80.50">01</option>
</select>
<select class="section-picker" data-course-code="PHYS150">
  <option value="">Choose a section</option>
  <option value="p-1" data-credits="3.5" data-fee="40">01</option>
</select>
<select class="other" data-course-code="ART100">
  <option value="a-1" data-credits="2" selected>01</option>
</select>
</body></html>`

func mount(t *testing.T, page string) *Controller {
	t.Helper()
	doc, err := dom.Parse(strings.NewReader(page))
	require.NoError(t, err)
	return Mount(doc)
}

func change(t *testing.T, c *Controller, code, value string) bool {
	t.Helper()
	picker := c.Document().QueryAttrValue(AttrCourseCode, code)
	require.NotNil(t, picker)
	picker.SetValue(value)
	return c.Dispatch(Event{Type: EventChange, Target: picker})
}

func click(t *testing.T, c *Controller, code string) bool {
	t.Helper()
	btn := c.RemoveButton(code)
	if btn == nil {
		return false
	}
	return c.Dispatch(Event{Type: EventClick, Target: btn})
}

func remainingText(c *Controller) string {
	return c.Document().QueryAttr(AttrRemaining).Text()
}

func feeText(c *Controller) string {
	return c.Document().QueryAttr(AttrFeeEstimate).Text()
}

func TestMountRendersInitialState(t *testing.T) {
	c := mount(t, hostPage)
	require.False(t, c.Inert())
	assert.Equal(t, "15", remainingText(c))
	assert.Equal(t, "USD 0.00", feeText(c))
	assert.Contains(t, c.Panel().OuterHTML(), render.EmptyMessage)
}

func TestRegistrationScenario(t *testing.T) {
	c := mount(t, hostPage)

	assert.True(t, change(t, c, "CS101", "cs-1"))
	assert.Equal(t, "12", remainingText(c))
	assert.Equal(t, "USD 120.00", feeText(c))

	assert.True(t, change(t, c, "MATH201", "m-1"))
	assert.Equal(t, "8", remainingText(c))
	assert.Equal(t, "USD 200.50", feeText(c))

	assert.True(t, click(t, c, "CS101"))
	assert.Equal(t, "11", remainingText(c))
	assert.Equal(t, "USD 80.50", feeText(c))
}

func TestSelectAttributesFromPickerAndOption(t *testing.T) {
	c := mount(t, hostPage)
	change(t, c, "CS101", "cs-2")
	change(t, c, "MATH201", "m-1")
	s := c.Summary()
	require.Len(t, s.Items, 2)
	cs := s.Items[0]
	assert.Equal(t, "CS101", cs.CourseCode)
	assert.Equal(t, "Intro to Programming", cs.CourseTitle)
	assert.Equal(t, "cs-2", cs.SectionID)
	assert.Equal(t, "Section 02", cs.SectionLabel)
	assert.Equal(t, "Wed 13:00", cs.Schedule)
	// picker-level credits win over the option.
	assert.Equal(t, "4", s.Items[1].Credits.String())
	assert.Equal(t, "", s.Items[1].CourseTitle)
}

func TestSwitchingSectionReplaces(t *testing.T) {
	c := mount(t, hostPage)
	change(t, c, "CS101", "cs-1")
	change(t, c, "CS101", "cs-2")
	s := c.Summary()
	require.Len(t, s.Items, 1)
	assert.Equal(t, "cs-2", s.Items[0].SectionID)
	assert.Equal(t, "USD 150.00", feeText(c))
	assert.Equal(t, 1, strings.Count(c.Panel().OuterHTML(), `data-remove="CS101"`))
}

func TestPlaceholderRemovesSelectedCourse(t *testing.T) {
	c := mount(t, hostPage)
	change(t, c, "CS101", "cs-1")
	assert.True(t, change(t, c, "CS101", ""))
	assert.Equal(t, "15", remainingText(c))
	assert.Empty(t, c.Summary().Items)
}

func TestPlaceholderForAbsentCourseIsNoop(t *testing.T) {
	c := mount(t, hostPage)
	change(t, c, "CS101", "cs-1")
	before := c.Panel().OuterHTML()
	assert.False(t, change(t, c, "MATH201", ""))
	assert.Equal(t, before, c.Panel().OuterHTML())
	assert.Equal(t, "12", remainingText(c))
}

func TestFractionalCreditsKeepDecimal(t *testing.T) {
	c := mount(t, hostPage)
	change(t, c, "PHYS150", "p-1")
	assert.Equal(t, "11.5", remainingText(c))
}

func TestRemainingClampsAndFlagsExhausted(t *testing.T) {
	page := strings.Replace(hostPage, `data-credits-remaining="15"`, `data-credits-remaining="6"`, 1)
	c := mount(t, page)
	change(t, c, "CS101", "cs-1")
	el := c.Document().QueryAttr(AttrRemaining)
	assert.False(t, el.HasClass(ExhaustedClass))
	change(t, c, "MATH201", "m-1")
	assert.Equal(t, "0", remainingText(c))
	assert.True(t, el.HasClass(ExhaustedClass))
	assert.True(t, c.Summary().Exhausted)
	click(t, c, "MATH201")
	assert.Equal(t, "3", remainingText(c))
	assert.False(t, el.HasClass(ExhaustedClass))
}

func TestRemovalRoundTripResetsPicker(t *testing.T) {
	c := mount(t, hostPage)
	initial := c.Panel().OuterHTML()
	change(t, c, "CS101", "cs-1")
	picker := c.Picker("CS101")
	require.Equal(t, "cs-1", picker.Value())

	assert.True(t, click(t, c, "CS101"))
	assert.Empty(t, c.Summary().Items)
	assert.Equal(t, "", picker.Value())
	assert.Equal(t, initial, c.Panel().OuterHTML())
}

func TestRemoveUnknownIsNoop(t *testing.T) {
	c := mount(t, hostPage)
	assert.False(t, c.RemoveItem("NOPE"))
	assert.False(t, click(t, c, "NOPE"))
}

func TestRenderIsIdempotent(t *testing.T) {
	c := mount(t, hostPage)
	change(t, c, "CS101", "cs-1")
	change(t, c, "PHYS150", "p-1")
	c.Render()
	first := c.Document().String()
	c.Render()
	assert.Equal(t, first, c.Document().String())
}

func TestDispatchIgnoresUnrelatedTargets(t *testing.T) {
	c := mount(t, hostPage)
	other := c.Document().QueryAttrValue(AttrCourseCode, "ART100")
	assert.False(t, c.Dispatch(Event{Type: EventChange, Target: other}))
	assert.False(t, c.Dispatch(Event{Type: EventClick, Target: other}))
	assert.False(t, c.Dispatch(Event{Type: "input", Target: c.Picker("CS101")}))
	assert.False(t, c.Dispatch(Event{Type: EventChange}))
	assert.Empty(t, c.Summary().Items)
}

func TestInertWithoutPanel(t *testing.T) {
	c := mount(t, `<html><body><select class="section-picker" data-course-code="CS101"><option value="x" selected>x</option></select></body></html>`)
	assert.True(t, c.Inert())
	before := c.Document().String()
	assert.False(t, c.Dispatch(Event{Type: EventChange, Target: c.Picker("CS101")}))
	assert.False(t, c.SelectSection("CS101", model.Selection{SectionID: "x"}))
	assert.False(t, c.RemoveItem("CS101"))
	c.Render()
	assert.Equal(t, before, c.Document().String())
}

func TestMissingRegionsAreSkipped(t *testing.T) {
	c := mount(t, `<html><body><div data-cart-list><span data-fee-estimate></span></div></body></html>`)
	require.False(t, c.Inert())
	assert.Equal(t, "USD", c.Config().Currency)
	assert.True(t, c.Config().CreditLimit.IsZero())
	assert.True(t, c.SelectSection("CS101", model.Selection{SectionID: "1", Fee: "12.5", Credits: "x"}))
	assert.Equal(t, "USD 12.50", c.Document().QueryAttr(AttrFeeEstimate).Text())
	assert.True(t, c.Summary().Exhausted)
}

func TestCourseCodeFallsBackToOptionValue(t *testing.T) {
	c := mount(t, `<html><body><div data-cart-list data-credits-remaining="10"><span data-credit-remaining></span></div>
<select class="section-picker"><option value="">-</option><option value="LANG1" data-credits="2">x</option></select></body></html>`)
	picker := c.Document().Query(func(e *dom.Element) bool { return e.HasClass(PickerClass) })
	picker.SetValue("LANG1")
	assert.True(t, c.Dispatch(Event{Type: EventChange, Target: picker}))
	require.Len(t, c.Summary().Items, 1)
	assert.Equal(t, "LANG1", c.Summary().Items[0].CourseCode)
	assert.Equal(t, "8", remainingText(c))
}
