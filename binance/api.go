package binance

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/quantfold/rollstat"
	"github.com/quantfold/rollstat/internal/set"
	"github.com/valyala/fastjson"
)

type Market int

const (
	Spot = iota + 1
	Perpetual
	InversePerpetual
)

// MainnetUrl is the base URL of the Binance spot API.
const MainnetUrl = "https://api.binance.com"

var validIntervals = set.New(
	"1s", "1m", "3m", "5m", "15m", "30m", "1h", "2h", "4h", "6h", "8h", "12h",
	"1d", "3d", "1w", "1M",
)

// Api provides access to the Binance HTTP API for spot, perpetual and inverse
// perpetual markets.
type Api struct {
	baseUrl *url.URL
	market  Market
	pools   map[string]*fastjson.ParserPool
}

// Error is the type returned when the Binance API responds with an error.
type Error struct {
	// HttpCode is the HTTP status code of the request.
	HttpCode int `json:"-"`
	// Code is the Binance error code.
	Code int `json:"code"`
	// Msg is a description of the error.
	Msg string `json:"msg"`
}

func (e Error) Error() string {
	return fmt.Sprintf("Binance API error (%d): %s [HTTP %d]", e.Code, e.Msg, e.HttpCode)
}

// NewApi creates a new Binance Api. The provided Market should match the
// baseUrl.
func NewApi(baseUrl string, market Market) (*Api, error) {
	u, err := url.Parse(baseUrl)
	if err != nil {
		return nil, fmt.Errorf("invalid apiUrl: %s", baseUrl)
	}
	pools := make(map[string]*fastjson.ParserPool)
	return &Api{baseUrl: u, market: market, pools: pools}, nil
}

// getParser returns a JSON parser for the provided endpoint.
func (api *Api) getParser(endpoint string) *fastjson.Parser {
	if pool, ok := api.pools[endpoint]; ok {
		return pool.Get()
	} else {
		var pool fastjson.ParserPool
		parser := pool.Get()
		api.pools[endpoint] = &pool
		return parser
	}
}

// returnParser returns a parser that was retrieved using getParser so that it
// can be reused for subsequent requests to the endpoint.
func (api *Api) returnParser(endpoint string, parser *fastjson.Parser) {
	api.pools[endpoint].Put(parser)
}

// Kline is a single candlestick returned by GetKlines.
type Kline struct {
	OpenTime  int64
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
	CloseTime int64
}

func (api *Api) klinesEndpoint() string {
	switch api.market {
	case Perpetual:
		return "/fapi/v1/klines"
	case InversePerpetual:
		return "/dapi/v1/klines"
	default:
		return "/api/v3/klines"
	}
}

// GetKlines gets up to limit most-recent klines from the Binance API for a
// given symbol and interval. Klines are returned in ascending open-time
// order. The interval must be one of the kline intervals supported by
// Binance, e.g. "1m", "1h" or "1d".
func (api *Api) GetKlines(symbol string, interval string, limit int) ([]Kline, error) {
	endpoint := api.klinesEndpoint()
	if !validIntervals.Exists(interval) {
		return nil, apiErr(endpoint, fmt.Errorf("invalid interval %q", interval))
	}
	u := urlWithParams(api.baseUrl, endpoint, map[string]string{
		"symbol":   symbol,
		"interval": interval,
		"limit":    strconv.Itoa(limit),
	})

	r, err := http.Get(u)
	if err != nil {
		return nil, apiErr(endpoint, err)
	}
	defer r.Body.Close()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, apiErr(endpoint, err)
	}

	p := api.getParser(endpoint)
	defer api.returnParser(endpoint, p)
	v, err := p.ParseBytes(body)
	if err != nil {
		return nil, apiErr(endpoint, err)
	}

	if r.StatusCode >= 300 {
		e := Error{
			HttpCode: r.StatusCode,
			Code:     v.GetInt("code"),
			Msg:      string(v.GetStringBytes("msg")),
		}
		return nil, apiErr(endpoint, e)
	}

	rows, err := v.Array()
	if err != nil {
		return nil, apiErr(endpoint, err)
	}
	klines := make([]Kline, 0, len(rows))
	for _, row := range rows {
		k, err := parseKline(row)
		if err != nil {
			return nil, apiErr(endpoint, err)
		}
		klines = append(klines, k)
	}
	return klines, nil
}

// parseKline parses a single kline from the API response. Klines are encoded
// as arrays of mixed number and string fields.
func parseKline(v *fastjson.Value) (Kline, error) {
	fields, err := v.Array()
	if err != nil {
		return Kline{}, err
	}
	if len(fields) < 7 {
		return Kline{}, fmt.Errorf("kline: expected at least 7 fields, got %d", len(fields))
	}
	open, err := floatField(fields[1])
	if err != nil {
		return Kline{}, fmt.Errorf("kline: invalid open: %w", err)
	}
	high, err := floatField(fields[2])
	if err != nil {
		return Kline{}, fmt.Errorf("kline: invalid high: %w", err)
	}
	low, err := floatField(fields[3])
	if err != nil {
		return Kline{}, fmt.Errorf("kline: invalid low: %w", err)
	}
	closePrice, err := floatField(fields[4])
	if err != nil {
		return Kline{}, fmt.Errorf("kline: invalid close: %w", err)
	}
	volume, err := floatField(fields[5])
	if err != nil {
		return Kline{}, fmt.Errorf("kline: invalid volume: %w", err)
	}
	return Kline{
		OpenTime:  fields[0].GetInt64(),
		Open:      open,
		High:      high,
		Low:       low,
		Close:     closePrice,
		Volume:    volume,
		CloseTime: fields[6].GetInt64(),
	}, nil
}

func floatField(v *fastjson.Value) (float64, error) {
	b, err := v.StringBytes()
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(string(b), 64)
}

// ClosePrices maps klines to a close-price series suitable for
// rollstat.Process, one point per kline, stamped with the kline close time.
func ClosePrices(klines []Kline) []rollstat.PricePoint {
	points := make([]rollstat.PricePoint, len(klines))
	for i, k := range klines {
		points[i] = rollstat.PricePoint{Time: time.UnixMilli(k.CloseTime), Price: k.Close}
	}
	return points
}

func urlWithParams(baseUrl *url.URL, path string, params map[string]string) string {
	u := baseUrl.JoinPath(path)
	values := url.Values{}
	for k, v := range params {
		values.Set(k, v)
	}
	u.RawQuery = values.Encode()
	return u.String()
}

func apiErr(endpoint string, err error) error {
	return fmt.Errorf("Binance API error %s: %w", endpoint, err)
}
