package test

import (
	"fmt"
	"math/rand"
	"net/http"
	"sort"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/skillupnow/skillupnow/core/course"
)

type courseTest struct {
	*TestEnv
}

func (ct *courseTest) createCourseOK(t *testing.T) course.Course {
	t.Helper()

	cn := course.CourseNew{
		Name:        fmt.Sprintf("course-%d", rand.Intn(100000)),
		Description: "an integration test course",
		Price:       int64(rand.Intn(90) + 10),
		ImageURL:    "https://img.example.com/course.png",
	}

	w := ct.request(t, http.MethodPost, "/courses", ct.OrgToken, cn)
	if w.StatusCode != http.StatusCreated {
		t.Fatalf("can't create course: status code %s", w.Status)
	}

	return decode[course.Course](t, w)
}

func (ct *courseTest) listCoursesOwnedOK(t *testing.T, want []course.Course) {
	t.Helper()

	w := ct.request(t, http.MethodGet, "/courses/owned", ct.CustomerToken, nil)
	if w.StatusCode != http.StatusOK {
		t.Fatalf("can't list owned courses: status code %s", w.Status)
	}

	got := decode[[]course.Course](t, w)

	byID := func(cs []course.Course) {
		sort.Slice(cs, func(i, j int) bool { return cs[i].ID < cs[j].ID })
	}
	byID(want)
	byID(got)

	// The database stores timestamps with microsecond precision.
	opt := cmpopts.EquateApproxTime(time.Millisecond)
	if diff := cmp.Diff(want, got, opt); diff != "" {
		t.Fatalf("owned courses mismatch (-want +got):\n%s", diff)
	}
}

func TestCourse(t *testing.T) {
	env, err := NewTestEnv(t, "course_test")
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	ct := &courseTest{env}

	c := ct.createCourseOK(t)

	w := ct.request(t, http.MethodGet, "/courses/"+c.ID, "", nil)
	if w.StatusCode != http.StatusOK {
		t.Fatalf("can't show course: status code %s", w.Status)
	}
	if got := decode[course.Course](t, w); got.ID != c.ID || got.Price != c.Price {
		t.Fatalf("shown course %+v does not match created %+v", got, c)
	}

	w = ct.request(t, http.MethodGet, "/courses", "", nil)
	if w.StatusCode != http.StatusOK {
		t.Fatalf("can't list courses: status code %s", w.Status)
	}
	if got := decode[[]course.Course](t, w); len(got) != 1 {
		t.Fatalf("expected 1 listed course, got %d", len(got))
	}

	// Customers cannot manage the catalog.
	w = ct.request(t, http.MethodPost, "/courses", ct.CustomerToken, course.CourseNew{
		Name: "nope", Description: "nope", Price: 1, ImageURL: "https://img.example.com/x.png",
	})
	w.Body.Close()
	if w.StatusCode != http.StatusForbidden {
		t.Fatalf("customer course creation: expected 403, got %s", w.Status)
	}

	w = ct.request(t, http.MethodPost, "/courses", "", course.CourseNew{
		Name: "nope", Description: "nope", Price: 1, ImageURL: "https://img.example.com/x.png",
	})
	w.Body.Close()
	if w.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous course creation: expected 401, got %s", w.Status)
	}

	newPrice := c.Price + 5
	w = ct.request(t, http.MethodPut, "/courses/"+c.ID, ct.OrgToken, course.CourseUp{Price: &newPrice})
	if w.StatusCode != http.StatusOK {
		t.Fatalf("can't update course: status code %s", w.Status)
	}
	if got := decode[course.Course](t, w); got.Price != newPrice {
		t.Fatalf("updated price %d, want %d", got.Price, newPrice)
	}

	w = ct.request(t, http.MethodGet, "/courses/not-a-uuid", "", nil)
	w.Body.Close()
	if w.StatusCode != http.StatusBadRequest {
		t.Fatalf("malformed course id: expected 400, got %s", w.Status)
	}

	w = ct.request(t, http.MethodGet, "/courses/00000000-0000-0000-0000-000000000000", "", nil)
	w.Body.Close()
	if w.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown course id: expected 404, got %s", w.Status)
	}
}
