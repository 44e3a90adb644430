package tests

import (
	"net/http"
	"testing"

	"skillink/internal/adapter/http/dto"
	"skillink/internal/core/domain"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestApplicantHandler_Apply_UsesSessionIdentity(t *testing.T) {
	router, s := newServer(t)
	post := samplePost()
	s.applicants.On("Apply", mock.Anything, freelance, uint64(4), domain.Applicant{
		ID:     freelance.ID,
		Name:   "Amina Dev",
		Avatar: "https://cdn.example/amina.png",
	}).Return(post, nil).Once()

	rec := call(t, router, freelance, http.MethodPost, "/api/posts/4/applicants",
		`{"id": 999, "name": "Amina Dev", "avatar": "https://cdn.example/amina.png"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[dto.PostItem](t, rec)
	require.Len(t, got.Applicants, 1)
}

func TestApplicantHandler_Apply_WithoutBody(t *testing.T) {
	router, s := newServer(t)
	s.applicants.On("Apply", mock.Anything, freelance, uint64(4), domain.Applicant{ID: freelance.ID}).
		Return(samplePost(), nil).Once()

	rec := call(t, router, freelance, http.MethodPost, "/api/posts/4/applicants", "")

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestApplicantHandler_Apply_MissingPost(t *testing.T) {
	router, s := newServer(t)
	s.applicants.On("Apply", mock.Anything, freelance, uint64(42), mock.Anything).
		Return(domain.Post{}, domain.ErrPostNotFound).Once()

	rec := call(t, router, freelance, http.MethodPost, "/api/posts/42/applicants", `{"name":"Amina"}`)

	decodeError(t, rec, http.StatusNotFound)
}

func TestApplicantHandler_Withdraw_ClientRefuses(t *testing.T) {
	router, s := newServer(t)
	s.applicants.On("Refuse", mock.Anything, owner, uint64(4), uint64(101)).Return(nil).Once()

	rec := call(t, router, owner, http.MethodDelete, "/api/posts/4/applicants/101", "")

	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestApplicantHandler_Withdraw_FreelancerCancels(t *testing.T) {
	router, s := newServer(t)
	s.applicants.On("Cancel", mock.Anything, freelance, uint64(4), uint64(101)).Return(nil).Once()

	rec := call(t, router, freelance, http.MethodDelete, "/api/posts/4/applicants/101", "")

	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestApplicantHandler_Withdraw_GuestIsForbidden(t *testing.T) {
	router, s := newServer(t)
	s.applicants.On("Cancel", mock.Anything, domain.Guest(), uint64(4), uint64(101)).
		Return(domain.Forbidden(domain.Guest(), "cancel application")).Once()

	rec := call(t, router, domain.Actor{}, http.MethodDelete, "/api/posts/4/applicants/101", "")

	decodeError(t, rec, http.StatusForbidden)
}

func TestApplicantHandler_Withdraw_InvalidApplicantID(t *testing.T) {
	router, _ := newServer(t)

	rec := call(t, router, owner, http.MethodDelete, "/api/posts/4/applicants/0", "")

	got := decodeError(t, rec, http.StatusBadRequest)
	require.Equal(t, "The applicant id is invalid.", got.Message)
}

func TestEditHandler_Lifecycle(t *testing.T) {
	router, s := newServer(t)
	session := domain.EditSession{PostID: 4, ActorID: owner.ID, Snapshot: samplePost(), StartedAt: fixedTime}
	s.posts.On("StartEdit", mock.Anything, owner, uint64(4)).Return(session, nil).Once()
	s.posts.On("CurrentEdit", mock.Anything).Return(session, nil).Once()
	s.lifecycle.On("DiscardEdit", mock.Anything, owner).Return(nil).Once()
	s.posts.On("ClearEdit", mock.Anything).Return(nil).Once()

	rec := call(t, router, owner, http.MethodPost, "/api/posts/4/edit", "")
	require.Equal(t, http.StatusOK, rec.Code)
	started := decode[dto.EditSessionItem](t, rec)
	require.Equal(t, uint64(4), started.PostID)
	require.NotNil(t, started.Draft)
	require.Equal(t, "Logo Design Needed", started.Draft.Title)
	require.Equal(t, "2026-11-17T09:00:00Z", *started.StartedAt)

	rec = call(t, router, domain.Actor{}, http.MethodGet, "/api/edit", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = call(t, router, owner, http.MethodPost, "/api/edit/discard", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = call(t, router, owner, http.MethodDelete, "/api/edit", "")
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestEditHandler_CurrentEdit_Empty(t *testing.T) {
	router, s := newServer(t)
	s.posts.On("CurrentEdit", mock.Anything).Return(domain.EditSession{}, nil).Once()

	rec := call(t, router, domain.Actor{}, http.MethodGet, "/api/edit", "")

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"post_id":0}`, rec.Body.String())
}

func TestEditHandler_DiscardEdit_OtherActor(t *testing.T) {
	router, s := newServer(t)
	other := domain.Actor{ID: 2, Role: domain.RoleClient}
	s.lifecycle.On("DiscardEdit", mock.Anything, other).Return(domain.Forbidden(other, "discard edit")).Once()

	rec := call(t, router, other, http.MethodPost, "/api/edit/discard", "")

	decodeError(t, rec, http.StatusForbidden)
}
