package service

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"proshop/internal/store"
)

func restoreGlobals() {
	bcryptGenerateFromPassword = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
	parseWithClaims = jwt.ParseWithClaims
	timeNow = time.Now
	newTokenID = uuid.NewString

	storeCreateUser = store.CreateUser
	storeGetUserByID = store.GetUserByID
	storeGetUserByEmail = store.GetUserByEmail
	storeListUsers = store.ListUsers
	storeUpdateUser = store.UpdateUser
	storeUpdateUserPassword = store.UpdateUserPassword
	storeDeleteUser = store.DeleteUser

	storeCreateProduct = store.CreateProduct
	storeGetProductByID = store.GetProductByID
	storeGetProductsByIDs = store.GetProductsByIDs
	storeListProducts = store.ListProducts
	storeUpdateProduct = store.UpdateProduct
	storeDeleteProduct = store.DeleteProduct

	storeCreateOrder = store.CreateOrder
	storeGetOrderByID = store.GetOrderByID
	storeListOrdersByUser = store.ListOrdersByUser
	storeListOrders = store.ListOrders
	storeMarkOrderPaid = store.MarkOrderPaid
	storeMarkOrderDelivered = store.MarkOrderDelivered
}

const fakePrefix = "hashed$"

// fakeHasher 以固定前綴模擬雜湊，並記錄 Hash 被呼叫的次數
type fakeHasher struct {
	hashes atomic.Int32
}

func newFakeHasher() *fakeHasher { return &fakeHasher{} }

func (f *fakeHasher) Hash(_ context.Context, plaintext string) (string, error) {
	f.hashes.Add(1)
	return fakePrefix + plaintext, nil
}

func (f *fakeHasher) Verify(_ context.Context, plaintext, hash string) (bool, error) {
	if !strings.HasPrefix(hash, fakePrefix) {
		return false, ErrDataIntegrity
	}
	return hash == fakePrefix+plaintext, nil
}
