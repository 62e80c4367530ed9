package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"intellialert/internal/domain/dto"
	"intellialert/internal/infra/logger"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCallService struct {
	requests []dto.CallRequest
	events   []dto.CallEvent
	statuses []dto.CallStatusEvent
	response dto.MakeCallResponse
}

func (f *fakeCallService) InitiateCall(_ context.Context, request dto.CallRequest) dto.MakeCallResponse {
	f.requests = append(f.requests, request)
	return f.response
}

func (f *fakeCallService) HandleCallEvent(_ context.Context, event dto.CallEvent) string {
	f.events = append(f.events, event)
	return "<Response><Say>ok</Say></Response>"
}

func (f *fakeCallService) HandleCallStatus(_ context.Context, event dto.CallStatusEvent) dto.StatusAck {
	f.statuses = append(f.statuses, event)
	return dto.StatusAck{Received: true}
}

func postForm(handler http.HandlerFunc, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestMakeCallReturnsServiceResponse(t *testing.T) {
	svc := &fakeCallService{response: dto.MakeCallResponse{Success: true, CallSid: "CA1"}}
	h := NewCallHandlers(logger.Discard(), svc)

	rec := httptest.NewRecorder()
	h.MakeCall(rec, httptest.NewRequest(http.MethodGet, "/make-call", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"callSid":"CA1"}`, rec.Body.String())
	assert.Equal(t, []dto.CallRequest{{}}, svc.requests)
}

func TestCreateCallRequiresDestination(t *testing.T) {
	svc := &fakeCallService{}
	h := NewCallHandlers(logger.Discard(), svc)

	rec := httptest.NewRecorder()
	h.CreateCall(rec, httptest.NewRequest(http.MethodPost, "/calls", strings.NewReader(`{"initialMessage":"hi"}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"field 'to' is required"}`, rec.Body.String())
	assert.Empty(t, svc.requests)
}

func TestCreateCallPassesRequest(t *testing.T) {
	svc := &fakeCallService{response: dto.MakeCallResponse{Success: true, CallSid: "CA2"}}
	h := NewCallHandlers(logger.Discard(), svc)

	rec := httptest.NewRecorder()
	h.CreateCall(rec, httptest.NewRequest(http.MethodPost, "/calls",
		strings.NewReader(`{"to":"+15552222222","initialMessage":"Stay on the line."}`)))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, svc.requests, 1)
	assert.Equal(t, dto.CallRequest{To: "+15552222222", InitialMessage: "Stay on the line."}, svc.requests[0])
}

func TestCreateCallDefaultsInitialMessage(t *testing.T) {
	svc := &fakeCallService{response: dto.MakeCallResponse{Success: true, CallSid: "CA5"}}
	h := NewCallHandlers(logger.Discard(), svc)

	rec := httptest.NewRecorder()
	h.CreateCall(rec, httptest.NewRequest(http.MethodPost, "/calls", strings.NewReader(`{"to":"+15552222222"}`)))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, svc.requests, 1)
	assert.Equal(t, dto.CallRequest{To: "+15552222222", InitialMessage: dto.DefaultInitialMessage}, svc.requests[0])
	assert.Equal(t, "Hello, this is an automated call.", svc.requests[0].InitialMessage)
}

func TestCallEventsDistinguishesMissingSpeech(t *testing.T) {
	svc := &fakeCallService{}
	h := NewCallHandlers(logger.Discard(), svc)

	rec := postForm(h.CallEvents, url.Values{"CallSid": {"CA3"}, "CallStatus": {"in-progress"}})
	postForm(h.CallEvents, url.Values{"CallSid": {"CA3"}, "SpeechResult": {"help"}})

	assert.Equal(t, "text/xml", rec.Header().Get("Content-Type"))
	assert.Equal(t, "<Response><Say>ok</Say></Response>", rec.Body.String())
	require.Len(t, svc.events, 2)
	assert.Equal(t, "CA3", svc.events[0].CallSid)
	assert.Equal(t, "in-progress", svc.events[0].CallStatus)
	assert.Nil(t, svc.events[0].SpeechResult)
	require.NotNil(t, svc.events[1].SpeechResult)
	assert.Equal(t, "help", *svc.events[1].SpeechResult)
}

func TestCallStatusAcknowledges(t *testing.T) {
	svc := &fakeCallService{}
	h := NewCallHandlers(logger.Discard(), svc)

	rec := postForm(h.CallStatus, url.Values{"CallSid": {"CA4"}, "CallStatus": {"ringing"}})

	assert.JSONEq(t, `{"received":true}`, rec.Body.String())
	assert.Equal(t, []dto.CallStatusEvent{{CallSid: "CA4", CallStatus: "ringing"}}, svc.statuses)
}

func TestCallStatusReportsUnparseableBody(t *testing.T) {
	svc := &fakeCallService{}
	h := NewCallHandlers(logger.Discard(), svc)

	req := httptest.NewRequest(http.MethodPost, "/call-status", strings.NewReader("CallSid=%zz"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.CallStatus(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var ack dto.StatusAck
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ack))
	assert.False(t, ack.Received)
	assert.NotEmpty(t, ack.Error)
	assert.Empty(t, svc.statuses)
}

const validProfile = `{
	"fullName": "Jane Doe",
	"dateOfBirth": 631152000,
	"phoneNumber": "+15553333333",
	"emergencyContacts": [{"id": "1", "name": "John Doe", "relationship": "spouse", "phoneNumber": "+15554444444"}],
	"medicalInfo": {"conditions": ["asthma"], "allergies": [], "medications": ["albuterol"], "bloodType": "O+", "organDonor": true},
	"emergencyPreferences": {"preferredHospital": "General", "doctorName": "Dr. Who", "doctorPhone": "+15555555555", "specialInstructions": ""},
	"locationInfo": {"homeAddress": "1 Main St", "workAddress": "2 Side St", "otherFrequentLocations": []}
}`

func serveProfile(body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/users/update_profile/{user_id}", NewProfileHandlers(logger.Discard()).UpdateProfile).Methods(http.MethodPut)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/users/update_profile/user-42", strings.NewReader(body)))
	return rec
}

func TestUpdateProfileEchoesOwner(t *testing.T) {
	rec := serveProfile(validProfile)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"user-42","profile":"Jane Doe"}`, rec.Body.String())
}

func TestUpdateProfileRejectsMalformedJSON(t *testing.T) {
	rec := serveProfile(`{"fullName":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateProfileRejectsMissingFields(t *testing.T) {
	rec := serveProfile(`{"fullName": "Jane Doe"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var body validationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "invalid profile", body.Error)
	assert.NotEmpty(t, body.Details)
}

// profileWithout returns validProfile with the field at path removed.
func profileWithout(t *testing.T, path ...string) string {
	t.Helper()
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(validProfile), &doc))

	node := doc
	for _, key := range path[:len(path)-1] {
		switch child := node[key].(type) {
		case map[string]any:
			node = child
		case []any:
			node = child[0].(map[string]any)
		}
	}
	delete(node, path[len(path)-1])

	out, err := json.Marshal(doc)
	require.NoError(t, err)
	return string(out)
}

func TestUpdateProfileRejectsAbsentField(t *testing.T) {
	cases := []struct {
		path      []string
		namespace string
	}{
		{[]string{"dateOfBirth"}, "UserEmergencyProfile.dateOfBirth"},
		{[]string{"emergencyPreferences"}, "UserEmergencyProfile.emergencyPreferences"},
		{[]string{"medicalInfo", "bloodType"}, "UserEmergencyProfile.medicalInfo.bloodType"},
		{[]string{"medicalInfo", "organDonor"}, "UserEmergencyProfile.medicalInfo.organDonor"},
		{[]string{"emergencyContacts", "id"}, "UserEmergencyProfile.emergencyContacts[0].id"},
		{[]string{"emergencyContacts", "relationship"}, "UserEmergencyProfile.emergencyContacts[0].relationship"},
		{[]string{"locationInfo", "homeAddress"}, "UserEmergencyProfile.locationInfo.homeAddress"},
		{[]string{"locationInfo", "workAddress"}, "UserEmergencyProfile.locationInfo.workAddress"},
		{[]string{"emergencyPreferences", "doctorPhone"}, "UserEmergencyProfile.emergencyPreferences.doctorPhone"},
	}

	for _, tc := range cases {
		t.Run(strings.Join(tc.path, "."), func(t *testing.T) {
			rec := serveProfile(profileWithout(t, tc.path...))

			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			var body validationResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, []string{tc.namespace + " failed on 'required'"}, body.Details)
		})
	}
}

func TestUpdateProfileRejectsNullField(t *testing.T) {
	body := strings.Replace(validProfile, `"dateOfBirth": 631152000`, `"dateOfBirth": null`, 1)

	rec := serveProfile(body)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestUpdateProfileAcceptsEmptyStrings(t *testing.T) {
	body := strings.NewReplacer(
		`"fullName": "Jane Doe"`, `"fullName": ""`,
		`"phoneNumber": "+15553333333"`, `"phoneNumber": ""`,
		`"name": "John Doe"`, `"name": ""`,
		`"bloodType": "O+"`, `"bloodType": ""`,
		`"homeAddress": "1 Main St"`, `"homeAddress": ""`,
	).Replace(validProfile)

	rec := serveProfile(body)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"user-42","profile":""}`, rec.Body.String())
}
