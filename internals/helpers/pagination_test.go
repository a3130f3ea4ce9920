package helper

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPagingAndBuild(t *testing.T) {
	p := NewPaging(0, 0, 12)
	assert.Equal(t, Paging{Page: 1, PerPage: 12, Offset: 0, Limit: 12}, p)

	p = NewPaging(3, 500, 10)
	assert.Equal(t, MaxPerPage, p.PerPage)
	assert.Equal(t, 200, p.Offset)

	pg := BuildPagination(25, NewPaging(2, 10, 10))
	assert.Equal(t, 3, pg.TotalPages)
	assert.True(t, pg.HasNext)
	assert.True(t, pg.HasPrev)

	pg = BuildPagination(0, NewPaging(1, 10, 10))
	assert.Equal(t, 1, pg.TotalPages)
	assert.False(t, pg.HasNext)
}

func TestWindow(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	assert.Equal(t, []int{3, 4}, Window(items, NewPaging(2, 2, 2)))
	assert.Equal(t, []int{5}, Window(items, NewPaging(3, 2, 2)))
	assert.Equal(t, []int{}, Window(items, NewPaging(4, 2, 2)))
}

func TestQueryHelpers(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		p := ResolvePaging(c, 10)
		return c.JSON(fiber.Map{
			"page":      p.Page,
			"per_page":  p.PerPage,
			"is_active": QueryBool(c, "is_active"),
			"belt":      QueryEnum(c, "belt"),
		})
	})

	get := func(target string) map[string]any {
		resp, err := app.Test(httptest.NewRequest("GET", target, nil))
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)
		var out map[string]any
		require.NoError(t, json.Unmarshal(body, &out))
		return out
	}

	out := get("/?page=2&limit=5&is_active=false&belt=Blue")
	assert.EqualValues(t, 2, out["page"])
	assert.EqualValues(t, 5, out["per_page"])
	assert.Equal(t, false, out["is_active"])
	assert.Equal(t, "Blue", out["belt"])

	out = get("/?per_page=abc&is_active=all&belt=ALL")
	assert.EqualValues(t, 1, out["page"])
	assert.EqualValues(t, 10, out["per_page"])
	assert.Nil(t, out["is_active"])
	assert.Equal(t, "", out["belt"])
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%akt%", ContainsPattern("AKT"))
	assert.Equal(t, `%\%%`, ContainsPattern("%"))
	assert.Equal(t, `%skb\_0%`, ContainsPattern("SKB_0"))
	assert.Equal(t, `%a\\b%`, ContainsPattern(`a\b`))
}
