package shop

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jofrance/billeterie/internal/authn"
	"github.com/jofrance/billeterie/internal/store"
	"github.com/jofrance/billeterie/internal/ticket"
	"github.com/pkg/errors"
)

type recordingArchive struct {
	mutex   sync.Mutex
	tickets []ticket.Ticket
}

func (a *recordingArchive) Store(ctx context.Context, t ticket.Ticket) error {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	a.tickets = append(a.tickets, t)

	return nil
}

type testEnv struct {
	handler *Handler
	store   *store.Store
	archive *recordingArchive
	offers  []*store.Offer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st := store.NewStore(filepath.Join(t.TempDir(), "billeterie.db"))

	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Errorf("%+v", errors.WithStack(err))
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	offers, err := st.ListOffers(ctx)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	archive := &recordingArchive{}

	return &testEnv{
		handler: NewHandler(st, archive),
		store:   st,
		archive: archive,
		offers:  offers,
	}
}

func (e *testEnv) createUser(t *testing.T, email string) *store.User {
	t.Helper()

	user, err := e.store.CreateUser(context.Background(), store.NewUser{
		FirstName: "Teddy",
		LastName:  "Riner",
		Email:     email,
		Password:  "judo2024!",
		Key1:      "0123456789abcdef0123456789abcdef",
	})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	return user
}

func (e *testEnv) serve(user *store.User, method string, target string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	if user != nil {
		req = req.WithContext(authn.WithContextUser(req.Context(), user))
	}

	res := httptest.NewRecorder()

	e.handler.ServeHTTP(res, req)

	return res
}

func offerForm(offerID int64) url.Values {
	return url.Values{"offer_id": {strconv.FormatInt(offerID, 10)}}
}

func TestPublicPages(t *testing.T) {
	env := newTestEnv(t)

	type testCase struct {
		Path         string
		ExpectedBody []string
	}

	testCases := []testCase{
		{Path: "/", ExpectedBody: []string{`<a href="/offers"><button>Voir les offres</button></a>`}},
		{Path: "/offers", ExpectedBody: []string{"<h3>Solo</h3>", "<h3>Familiale</h3>", "50.00 €", "160.00 €", `formaction="/offers/validate"`}},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("Case #%d", idx), func(t *testing.T) {
			res := env.serve(nil, http.MethodGet, tc.Path, nil)

			if e, g := http.StatusOK, res.Code; e != g {
				t.Errorf("res.Code: expected '%v', got '%v'", e, g)
			}

			for _, expected := range tc.ExpectedBody {
				if !strings.Contains(res.Body.String(), expected) {
					t.Errorf("body should contain '%s', got:\n%s", expected, res.Body.String())
				}
			}
		})
	}
}

func TestAddToCart(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "teddy@example.org")
	duo := env.offers[1]

	type testCase struct {
		User             *store.User
		Form             url.Values
		ExpectedStatus   int
		ExpectedLocation string
		ExpectedBody     string
	}

	testCases := []testCase{
		{User: nil, Form: offerForm(duo.ID), ExpectedStatus: http.StatusOK, ExpectedBody: "Connexion requise"},
		{User: user, Form: offerForm(999), ExpectedStatus: http.StatusBadRequest, ExpectedBody: "Offre inconnue"},
		{User: user, Form: url.Values{}, ExpectedStatus: http.StatusBadRequest, ExpectedBody: "Offre inconnue"},
		{User: user, Form: offerForm(duo.ID), ExpectedStatus: http.StatusSeeOther, ExpectedLocation: "/my/orders"},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("Case #%d", idx), func(t *testing.T) {
			res := env.serve(tc.User, http.MethodPost, "/my/cart", tc.Form)

			if e, g := tc.ExpectedStatus, res.Code; e != g {
				t.Errorf("res.Code: expected '%v', got '%v'", e, g)
			}

			if e, g := tc.ExpectedLocation, res.Header().Get("Location"); e != g {
				t.Errorf("Location: expected '%v', got '%v'", e, g)
			}

			if !strings.Contains(res.Body.String(), tc.ExpectedBody) {
				t.Errorf("body should contain '%s', got:\n%s", tc.ExpectedBody, res.Body.String())
			}
		})
	}

	cart, err := env.store.ListUserOrders(context.Background(), user.ID, store.OrderStatusDraft)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 1, len(cart); e != g {
		t.Fatalf("len(cart): expected '%v', got '%v'", e, g)
	}

	if e, g := int64(1), cart[0].Quantity; e != g {
		t.Errorf("cart[0].Quantity: expected '%v', got '%v'", e, g)
	}
}

func TestValidateOffer(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "teddy@example.org")
	familiale := env.offers[2]

	res := env.serve(user, http.MethodPost, "/offers/validate", url.Values{})
	if !strings.Contains(res.Body.String(), "Aucune offre sélectionnée") {
		t.Errorf("body should contain 'Aucune offre sélectionnée', got:\n%s", res.Body.String())
	}

	res = env.serve(nil, http.MethodPost, "/offers/validate", offerForm(familiale.ID))

	if e, g := http.StatusSeeOther, res.Code; e != g {
		t.Errorf("res.Code: expected '%v', got '%v'", e, g)
	}

	if e, g := authn.LoginPath, res.Header().Get("Location"); e != g {
		t.Errorf("Location: expected '%v', got '%v'", e, g)
	}

	cookies := res.Result().Cookies()
	if e, g := 1, len(cookies); e != g {
		t.Fatalf("len(cookies): expected '%v', got '%v'", e, g)
	}

	if e, g := authn.SelectedOfferCookie, cookies[0].Name; e != g {
		t.Errorf("cookies[0].Name: expected '%v', got '%v'", e, g)
	}

	if e, g := strconv.FormatInt(familiale.ID, 10), cookies[0].Value; e != g {
		t.Errorf("cookies[0].Value: expected '%v', got '%v'", e, g)
	}

	res = env.serve(user, http.MethodPost, "/offers/validate", offerForm(999))
	if !strings.Contains(res.Body.String(), "Offre introuvable") {
		t.Errorf("body should contain 'Offre introuvable', got:\n%s", res.Body.String())
	}

	res = env.serve(user, http.MethodPost, "/offers/validate", offerForm(familiale.ID))

	if e, g := http.StatusSeeOther, res.Code; e != g {
		t.Fatalf("res.Code: expected '%v', got '%v'", e, g)
	}

	cart, err := env.store.ListUserOrders(context.Background(), user.ID, store.OrderStatusDraft)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 1, len(cart); e != g {
		t.Fatalf("len(cart): expected '%v', got '%v'", e, g)
	}

	if e, g := fmt.Sprintf("/pay?order_id=%d", cart[0].ID), res.Header().Get("Location"); e != g {
		t.Errorf("Location: expected '%v', got '%v'", e, g)
	}

	if e, g := familiale.Seats, cart[0].Quantity; e != g {
		t.Errorf("cart[0].Quantity: expected '%v', got '%v'", e, g)
	}
}

func TestPayment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "teddy@example.org")
	other := env.createUser(t, "clarisse@example.org")

	solo := env.offers[0]

	order, err := env.store.SelectOffer(ctx, user.ID, solo.ID)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	payPath := fmt.Sprintf("/pay?order_id=%d", order.ID)
	confirmForm := url.Values{"order_id": {strconv.FormatInt(order.ID, 10)}}

	res := env.serve(nil, http.MethodGet, payPath, nil)
	if e, g := http.StatusSeeOther, res.Code; e != g {
		t.Errorf("res.Code: expected '%v', got '%v'", e, g)
	}

	res = env.serve(other, http.MethodGet, payPath, nil)
	if e, g := http.StatusNotFound, res.Code; e != g {
		t.Errorf("res.Code: expected '%v', got '%v'", e, g)
	}

	if e, g := "Commande introuvable.", strings.TrimSpace(res.Body.String()); e != g {
		t.Errorf("body: expected '%v', got '%v'", e, g)
	}

	res = env.serve(user, http.MethodGet, payPath, nil)
	if e, g := http.StatusOK, res.Code; e != g {
		t.Fatalf("res.Code: expected '%v', got '%v'", e, g)
	}

	if !strings.Contains(res.Body.String(), "<strong>Solo</strong>") {
		t.Errorf("body should contain offer name, got:\n%s", res.Body.String())
	}

	res = env.serve(other, http.MethodPost, "/payments/confirm", confirmForm)
	if e, g := http.StatusNotFound, res.Code; e != g {
		t.Errorf("res.Code: expected '%v', got '%v'", e, g)
	}

	res = env.serve(user, http.MethodPost, "/payments/confirm", confirmForm)
	if e, g := http.StatusOK, res.Code; e != g {
		t.Fatalf("res.Code: expected '%v', got '%v'", e, g)
	}

	if e, g := 1, len(env.archive.tickets); e != g {
		t.Fatalf("len(env.archive.tickets): expected '%v', got '%v'", e, g)
	}

	issued := env.archive.tickets[0]

	if e, g := 64, len(issued.FinalKey); e != g {
		t.Errorf("len(issued.FinalKey): expected '%v', got '%v'", e, g)
	}

	if !strings.HasPrefix(issued.FinalKey, user.Key1) {
		t.Errorf("final key '%s' should start with key1 '%s'", issued.FinalKey, user.Key1)
	}

	if !strings.Contains(res.Body.String(), issued.FinalKey) {
		t.Errorf("body should contain final key '%s', got:\n%s", issued.FinalKey, res.Body.String())
	}

	res = env.serve(user, http.MethodPost, "/payments/confirm", confirmForm)
	if e, g := http.StatusNotFound, res.Code; e != g {
		t.Errorf("res.Code: expected '%v', got '%v'", e, g)
	}

	res = env.serve(user, http.MethodGet, "/my/orders", nil)
	if e, g := http.StatusOK, res.Code; e != g {
		t.Fatalf("res.Code: expected '%v', got '%v'", e, g)
	}

	for _, expected := range []string{
		"Aucun article dans votre panier.",
		"<code>" + issued.FinalKey + "</code>",
		order.CreatedAt.Format("02/01/2006 15:04"),
	} {
		if !strings.Contains(res.Body.String(), expected) {
			t.Errorf("body should contain '%s', got:\n%s", expected, res.Body.String())
		}
	}
}

func TestCancelPayment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "teddy@example.org")
	other := env.createUser(t, "clarisse@example.org")

	order, err := env.store.AddToCart(ctx, user.ID, env.offers[0].ID, 2)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	form := url.Values{"order_id": {strconv.FormatInt(order.ID, 10)}}

	res := env.serve(other, http.MethodPost, "/payments/cancel", form)
	if e, g := http.StatusNotFound, res.Code; e != g {
		t.Errorf("res.Code: expected '%v', got '%v'", e, g)
	}

	res = env.serve(user, http.MethodPost, "/payments/cancel", form)
	if e, g := http.StatusSeeOther, res.Code; e != g {
		t.Errorf("res.Code: expected '%v', got '%v'", e, g)
	}

	if e, g := "/my/orders", res.Header().Get("Location"); e != g {
		t.Errorf("Location: expected '%v', got '%v'", e, g)
	}

	canceled, err := env.store.ListUserOrders(ctx, user.ID, store.OrderStatusCanceled)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 1, len(canceled); e != g {
		t.Errorf("len(canceled): expected '%v', got '%v'", e, g)
	}
}
