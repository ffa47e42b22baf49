package common

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// APIVersion is reported in every response's metadata
	APIVersion = "v0"

	HeaderRequestID = "X-Request-ID"
)

// Structs for the API response format

type Metadata struct {
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	RequestID string    `json:"requestId"`
}

type APIResponse struct {
	Data     interface{} `json:"data"`
	Errors   []string    `json:"errors"`
	Metadata Metadata    `json:"metadata"`
}

// Response functions

func CreateAPIResponse(data interface{}, errors []string, requestID string) APIResponse {
	// If the requestID is blank and not cascading from other functions generate a new one
	if requestID == "" {
		requestID = uuid.New().String()
	}
	if errors == nil {
		errors = []string{}
	}
	return APIResponse{
		Data:   data,
		Errors: errors,
		Metadata: Metadata{
			Timestamp: time.Now(),
			Version:   APIVersion,
			RequestID: requestID,
		},
	}
}

func CreateSuccessResponse(data interface{}) APIResponse {
	return CreateAPIResponse(data, []string{}, "")
}

func CreateErrorResponse(errors []string) APIResponse {
	return CreateAPIResponse(nil, errors, "")
}

func CreateSuccessResponseWithRequestID(data interface{}, requestID string) APIResponse {
	return CreateAPIResponse(data, []string{}, requestID)
}

func CreateErrorResponseWithRequestID(errors []string, requestID string) APIResponse {
	return CreateAPIResponse(nil, errors, requestID)
}

// RequestID returns the request id for c, reusing the client's X-Request-ID
// when it is a valid uuid. The id is echoed back in the response header.
func RequestID(c *gin.Context) string {
	if id := c.Writer.Header().Get(HeaderRequestID); id != "" {
		return id
	}
	id := c.GetHeader(HeaderRequestID)
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.New().String()
	}
	c.Header(HeaderRequestID, id)
	return id
}

// Success writes data inside the envelope
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, CreateSuccessResponseWithRequestID(data, RequestID(c)))
}

// Error writes errors inside the envelope
func Error(c *gin.Context, status int, errors ...string) {
	c.JSON(status, CreateErrorResponseWithRequestID(errors, RequestID(c)))
}

// AbortWithError writes errors inside the envelope and stops the handler chain
func AbortWithError(c *gin.Context, status int, errors ...string) {
	c.AbortWithStatusJSON(status, CreateErrorResponseWithRequestID(errors, RequestID(c)))
}

//Dining hours service. Open, closed and limited status for campus dining halls.
//API Copyright (C) 2025 OpenSourceDUTH
//This program is free software: you can redistribute it and/or modify
//it under the terms of the GNU General Public License as published by
//the Free Software Foundation, either version 3 of the License, or
//(at your option) any later version.
//
//This program is distributed in the hope that it will be useful,
//but WITHOUT ANY WARRANTY; without even the implied warranty of
//MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//GNU General Public License for more details.
//
//You should have received a copy of the GNU General Public License
//along with this program.  If not, see <https://www.gnu.org/licenses/>.
