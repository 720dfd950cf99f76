package signer

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/MixinNetwork/dotsigner/apps/substrate"
	"github.com/MixinNetwork/dotsigner/common"
	"github.com/MixinNetwork/mixin/logger"
	"github.com/dimfeld/httptreemux/v5"
)

const DefaultListen = "127.0.0.1:9933"

type httpBody struct {
	Address     string          `json:"address"`
	Mnemonic    string          `json:"mnemonic"`
	Account     *uint32         `json:"account"`
	Network     *int            `json:"network"`
	Legacy      *bool           `json:"legacy"`
	Transaction json.RawMessage `json:"transaction"`
}

type server struct {
	signer  *Signer
	version string
}

func (s *Signer) StartHTTP(listen, version string) error {
	if listen == "" {
		listen = DefaultListen
	}
	logger.Printf("Signer.StartHTTP(%s, %s)", listen, version)
	return http.ListenAndServe(listen, s.Handler(version))
}

func (s *Signer) Handler(version string) http.Handler {
	srv := &server{signer: s, version: version}
	router := httptreemux.New()
	router.PanicHandler = common.HandlePanic
	router.NotFoundHandler = common.HandleNotFound

	router.GET("/", srv.index)
	router.POST("/address", srv.address)
	router.POST("/sign", srv.sign)
	router.POST("/decode", srv.decode)
	return common.HandleCORS(router)
}

func (srv *server) index(w http.ResponseWriter, r *http.Request, params map[string]string) {
	common.RenderJSON(w, r, http.StatusOK, map[string]any{
		"version": srv.version,
		"networks": []map[string]any{
			{"prefix": substrate.NetworkPolkadot, "name": substrate.NetworkName(substrate.NetworkPolkadot)},
			{"prefix": substrate.NetworkKusama, "name": substrate.NetworkName(substrate.NetworkKusama)},
		},
	})
}

func (srv *server) address(w http.ResponseWriter, r *http.Request, params map[string]string) {
	req, err := srv.readRequest(r)
	if err != nil {
		common.RenderBadRequest(w, r, err)
		return
	}
	acc, err := srv.signer.DeriveAccount(r.Context(), req)
	if err != nil {
		renderSignerError(w, r, err)
		return
	}
	common.RenderJSON(w, r, http.StatusOK, acc)
}

func (srv *server) sign(w http.ResponseWriter, r *http.Request, params map[string]string) {
	req, err := srv.readRequest(r)
	if err != nil {
		common.RenderBadRequest(w, r, err)
		return
	}
	res, err := srv.signer.DeriveAndSign(r.Context(), req)
	if err != nil {
		renderSignerError(w, r, err)
		return
	}
	common.RenderJSON(w, r, http.StatusOK, res)
}

func (srv *server) decode(w http.ResponseWriter, r *http.Request, params map[string]string) {
	var body httpBody
	err := json.NewDecoder(r.Body).Decode(&body)
	if err != nil {
		common.RenderBadRequest(w, r, err)
		return
	}
	if body.Address != "" {
		da, err := DecodeAddress(body.Address)
		if err != nil {
			renderSignerError(w, r, err)
			return
		}
		common.RenderJSON(w, r, http.StatusOK, da)
		return
	}
	tx, err := substrate.ParseTransactionJSON(body.Transaction)
	if err != nil {
		renderSignerError(w, r, err)
		return
	}
	common.RenderJSON(w, r, http.StatusOK, DescribeTransaction(tx))
}

func (srv *server) readRequest(r *http.Request) (*Request, error) {
	var body httpBody
	err := json.NewDecoder(r.Body).Decode(&body)
	if err != nil {
		return nil, err
	}
	req := srv.signer.NewRequest(body.Mnemonic)
	if id := r.Header.Get("X-Request-ID"); id != "" {
		req.Id = id
	}
	if body.Account != nil {
		req.Account = *body.Account
	}
	if body.Network != nil {
		if *body.Network < 0 || *body.Network > 255 {
			return nil, fmt.Errorf("invalid network %d: %w", *body.Network, substrate.ErrUnsupportedNetwork)
		}
		req.Network = byte(*body.Network)
	}
	if body.Legacy != nil {
		req.Legacy = *body.Legacy
	}
	if len(body.Transaction) > 0 && string(body.Transaction) != "null" {
		req.Transaction, err = substrate.ParseTransactionJSON(body.Transaction)
		if err != nil {
			return nil, err
		}
	}
	return req, nil
}

func renderSignerError(w http.ResponseWriter, r *http.Request, err error) {
	for _, e := range []error{
		substrate.ErrInvalidMnemonic,
		substrate.ErrInvalidEncoding,
		substrate.ErrInvalidChecksum,
		substrate.ErrUnsupportedPayloadShape,
		substrate.ErrUnsupportedNetwork,
		substrate.ErrInvalidIndex,
	} {
		if errors.Is(err, e) {
			common.RenderBadRequest(w, r, err)
			return
		}
	}
	common.RenderError(w, r, err)
}
