package gurkerl

import (
	"context"
	"net/http"
	"testing"

	pkgerrors "github.com/pasogott/gurkerlcli/pkg/errors"
)

func TestShoppingListIDs(t *testing.T) {
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/api/v1/components/shopping-lists" {
			t.Fatalf("unexpected path %s", req.URL.Path)
		}
		resp := jsonResponse(http.StatusOK, `{"shoppingLists":[11,22]}`)
		resp.Request = req
		return resp, nil
	})

	ids, err := testClient(rt).ShoppingListIDs(context.Background())
	if err != nil {
		t.Fatalf("list ids: %v", err)
	}
	if len(ids) != 2 || ids[0] != 11 || ids[1] != 22 {
		t.Fatalf("unexpected ids %v", ids)
	}
}

func TestShoppingListDetail(t *testing.T) {
	body := `{"id": 11, "name": "Wochenende", "type": "GENERAL", "readOnly": false, "shared": true,
		"products": [{"productId": 12345, "amount": 2, "checked": true}]}`
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/api/v2/shopping-lists/id/11" {
			t.Fatalf("unexpected path %s", req.URL.Path)
		}
		resp := jsonResponse(http.StatusOK, body)
		resp.Request = req
		return resp, nil
	})

	list, err := testClient(rt).ShoppingList(context.Background(), 11)
	if err != nil {
		t.Fatalf("list detail: %v", err)
	}
	if list.Name != "Wochenende" || !list.Shared || list.ReadOnly {
		t.Fatalf("unexpected list %+v", list)
	}
	if len(list.Products) != 1 || !list.Products[0].Checked {
		t.Fatalf("unexpected products %+v", list.Products)
	}
}

func TestCreateShoppingListFetchesDetail(t *testing.T) {
	var paths []string
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		paths = append(paths, req.URL.Path)
		var resp *http.Response
		switch req.URL.Path {
		case "/api/v1/shopping-lists":
			if req.Method != http.MethodPost {
				t.Fatalf("unexpected method %s", req.Method)
			}
			if req.URL.Query().Get("source") != "Shopping Lists" {
				t.Fatalf("missing source parameter: %s", req.URL.RawQuery)
			}
			resp = jsonResponse(http.StatusOK, `{"id": 33}`)
		case "/api/v2/shopping-lists/id/33":
			resp = jsonResponse(http.StatusOK, `{"id": 33, "name": "Neu", "type": "GENERAL"}`)
		default:
			t.Fatalf("unexpected path %s", req.URL.Path)
		}
		resp.Request = req
		return resp, nil
	})

	list, err := testClient(rt).CreateShoppingList(context.Background(), "Neu")
	if err != nil {
		t.Fatalf("create list: %v", err)
	}
	if list.ID != 33 || list.Name != "Neu" {
		t.Fatalf("unexpected list %+v", list)
	}
	if len(paths) != 2 {
		t.Fatalf("expected create followed by detail fetch, got %v", paths)
	}
}

func TestCreateShoppingListWithoutIDFails(t *testing.T) {
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		resp := jsonResponse(http.StatusOK, `{}`)
		resp.Request = req
		return resp, nil
	})

	_, err := testClient(rt).CreateShoppingList(context.Background(), "Neu")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeAPI {
		t.Fatalf("expected api error, got %v", err)
	}
}

func TestDeleteShoppingList(t *testing.T) {
	var captured *http.Request
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		captured = req
		resp := jsonResponse(http.StatusOK, "")
		resp.Request = req
		return resp, nil
	})

	if err := testClient(rt).DeleteShoppingList(context.Background(), 11); err != nil {
		t.Fatalf("delete list: %v", err)
	}
	if captured.Method != http.MethodDelete || captured.URL.Path != "/api/v1/shopping-lists/11" {
		t.Fatalf("unexpected request %s %s", captured.Method, captured.URL.Path)
	}
}
